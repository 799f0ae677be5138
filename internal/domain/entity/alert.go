package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AlertType classifies the event an alert announces
type AlertType string

const (
	AlertTypeOutbreak    AlertType = "outbreak"
	AlertTypeAppointment AlertType = "appointment"
	AlertTypeLabResult   AlertType = "lab_result"
	AlertTypeSystem      AlertType = "system"
)

// AlertSeverity is both a display level and the primary listing sort key
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertSeverities lists severities from highest to lowest rank.
var AlertSeverities = []AlertSeverity{
	AlertSeverityCritical,
	AlertSeverityHigh,
	AlertSeverityMedium,
	AlertSeverityLow,
}

// Rank orders severities: critical 4, high 3, medium 2, low 1, unknown 0.
func (s AlertSeverity) Rank() int {
	for i, sev := range AlertSeverities {
		if sev == s {
			return len(AlertSeverities) - i
		}
	}
	return 0
}

func (s AlertSeverity) IsValid() bool {
	return s.Rank() > 0
}

// SeverityRankExpr renders Rank as a SQL CASE expression over column.
func SeverityRankExpr(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for _, sev := range AlertSeverities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", sev, sev.Rank())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

// GeographicArea is stored and indexed for future proximity targeting.
// No query path filters on it.
type GeographicArea struct {
	Country   *string  `gorm:"type:varchar(100)"`
	Region    *string  `gorm:"type:varchar(100)"`
	City      *string  `gorm:"type:varchar(100)"`
	Longitude *float64 `gorm:"type:double precision"`
	Latitude  *float64 `gorm:"type:double precision"`
	RadiusKm  *float64 `gorm:"type:double precision"`
}

func (g GeographicArea) IsZero() bool {
	return g.Country == nil && g.Region == nil && g.City == nil &&
		g.Longitude == nil && g.Latitude == nil && g.RadiusKm == nil
}

// Alert is a notification targeted at specific users, roles, or everyone.
type Alert struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           AlertType      `gorm:"type:varchar(20);not null"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Message        string         `gorm:"type:text;not null"`
	Severity       AlertSeverity  `gorm:"type:varchar(10);not null"`
	TargetRoles    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	GeographicArea GeographicArea `gorm:"embedded;embeddedPrefix:geo_"`
	SymptomPattern pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AffectedCount  *int
	ExpiresAt      *time.Time `gorm:"index"`
	IsActive       bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	// Relationships
	TargetUsers    []User          `gorm:"many2many:alert_target_users;"`
	RelatedReports []SymptomReport `gorm:"many2many:alert_related_reports;"`
}

func (Alert) TableName() string {
	return "alerts"
}

// IsBroadcast reports whether the alert targets neither users nor roles.
func (a *Alert) IsBroadcast() bool {
	return len(a.TargetUsers) == 0 && len(a.TargetRoles) == 0
}

// IsVisibleTo requires TargetUsers to be loaded.
func (a *Alert) IsVisibleTo(viewer Identity) bool {
	if a.IsBroadcast() {
		return true
	}
	for _, u := range a.TargetUsers {
		if u.ID == viewer.UserID {
			return true
		}
	}
	for _, r := range a.TargetRoles {
		if r == viewer.Role {
			return true
		}
	}
	return false
}

// IsExpired reports whether expiresAt has passed; the sweeper deletes such alerts.
func (a *Alert) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

func (a *Alert) Deactivate() {
	a.IsActive = false
}

func (a *Alert) TargetUserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(a.TargetUsers))
	for i, u := range a.TargetUsers {
		ids[i] = u.ID
	}
	return ids
}

// AlertRead is a per-user read receipt; a row's presence means read.
type AlertRead struct {
	AlertID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReadAt  time.Time `gorm:"not null"`
}

func (AlertRead) TableName() string {
	return "alert_reads"
}

// AlertTargetUser is a row of the alert_target_users join table
type AlertTargetUser struct {
	AlertID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AlertTargetUser) TableName() string {
	return "alert_target_users"
}

// AlertRelatedReport is a row of the alert_related_reports join table
type AlertRelatedReport struct {
	AlertID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SymptomReportID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AlertRelatedReport) TableName() string {
	return "alert_related_reports"
}
