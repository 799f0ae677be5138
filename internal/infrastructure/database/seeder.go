package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"telehealth-api/internal/domain/entity"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedOptions struct {
	Doctors  int
	Patients int
	// Password is shared by every seeded account
	Password string
	Seed     int64
}

var specializations = []string{
	"General Practice",
	"Cardiology",
	"Dermatology",
	"Endocrinology",
	"Infectious Disease",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Pulmonology",
}

var symptomPool = []string{
	"fever", "cough", "headache", "fatigue", "sore throat", "nausea",
	"shortness of breath", "muscle ache", "rash", "dizziness", "chills",
}

var labTests = []string{
	"Complete Blood Count", "Lipid Panel", "HbA1c", "Thyroid Panel",
	"Basic Metabolic Panel", "Urinalysis", "CRP", "Liver Function Test",
}

// Seed fills an empty schema with demo users, reports, consultations, lab results and alerts.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Logger, opts SeedOptions) error {
	if opts.Doctors <= 0 || opts.Patients <= 0 {
		return fmt.Errorf("seed needs at least one doctor and one patient")
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	gofakeit.Seed(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctors, err := seedUsers(tx, entity.RoleDoctor, opts.Doctors, string(hash))
		if err != nil {
			return fmt.Errorf("seed doctors: %w", err)
		}
		log.Infof("Seeded %d doctors", len(doctors))

		patients, err := seedUsers(tx, entity.RolePatient, opts.Patients, string(hash))
		if err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		log.Infof("Seeded %d patients", len(patients))

		reports, err := seedReports(tx, patients, doctors)
		if err != nil {
			return fmt.Errorf("seed symptom reports: %w", err)
		}
		log.Infof("Seeded %d symptom reports", len(reports))

		if err := seedConsultations(tx, reports, doctors); err != nil {
			return fmt.Errorf("seed consultations: %w", err)
		}
		if err := seedLabResults(tx, patients, doctors); err != nil {
			return fmt.Errorf("seed lab results: %w", err)
		}
		if err := seedAlerts(tx, reports, patients); err != nil {
			return fmt.Errorf("seed alerts: %w", err)
		}

		log.Info("Seed complete")
		return nil
	})
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = gofakeit.Word()
	}
	return strings.Join(parts, " ")
}

func pick(values []string) string {
	return values[gofakeit.Number(0, len(values)-1)]
}

func seedUsers(tx *gorm.DB, role string, count int, passwordHash string) ([]entity.User, error) {
	users := make([]entity.User, count)
	for i := range users {
		first, last := gofakeit.FirstName(), gofakeit.LastName()
		phone := gofakeit.Phone()
		users[i] = entity.User{
			Email:     fmt.Sprintf("%s.%s.%d@%s.example.com", strings.ToLower(first), strings.ToLower(last), i, role),
			Password:  passwordHash,
			FirstName: first,
			LastName:  last,
			Phone:     &phone,
			Role:      role,
		}
		if role == entity.RoleDoctor {
			specialty := pick(specializations)
			users[i].Specialization = &specialty
		} else {
			dob := gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
			gender := pick([]string{entity.GenderMale, entity.GenderFemale, entity.GenderOther})
			users[i].DateOfBirth = &dob
			users[i].Gender = &gender
		}
	}
	if err := tx.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func seedReports(tx *gorm.DB, patients, doctors []entity.User) ([]entity.SymptomReport, error) {
	var reports []entity.SymptomReport
	for _, p := range patients {
		for i := 0; i < gofakeit.Number(1, 3); i++ {
			report := entity.SymptomReport{
				PatientID:   p.ID,
				Symptoms:    []string{pick(symptomPool), pick(symptomPool)},
				Description: words(12),
				Severity:    entity.ReportSeverity(pick([]string{"mild", "moderate", "severe"})),
				Duration:    fmt.Sprintf("%d days", gofakeit.Number(1, 14)),
				Status:      entity.ReportStatusPending,
				AIAnalysis:  entity.AIAnalysis{PossibleConditions: pq.StringArray{}, RecommendedActions: pq.StringArray{}},
			}
			if gofakeit.Bool() {
				report.MarkReviewed(doctors[gofakeit.Number(0, len(doctors)-1)].ID)
				report.Status = entity.ReportStatusReviewed
				notes := words(8)
				report.ReviewNotes = &notes
			}
			reports = append(reports, report)
		}
	}
	if err := tx.Omit("Patient", "Reviewer").Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func seedConsultations(tx *gorm.DB, reports []entity.SymptomReport, doctors []entity.User) error {
	now := time.Now().UTC()
	var consultations []entity.Consultation
	for i := range reports {
		if !gofakeit.Bool() {
			continue
		}
		reportID := reports[i].ID
		url := gofakeit.URL()
		consultations = append(consultations, entity.Consultation{
			PatientID:   reports[i].PatientID,
			DoctorID:    doctors[gofakeit.Number(0, len(doctors)-1)].ID,
			ReportID:    &reportID,
			ScheduledAt: gofakeit.DateRange(now.AddDate(0, 0, -30), now.AddDate(0, 0, 30)),
			Status:      entity.ConsultationStatus(pick([]string{"scheduled", "completed", "cancelled"})),
			Type:        entity.ConsultationType(pick([]string{"video", "audio", "chat"})),
			MeetingURL:  &url,
		})
	}
	if len(consultations) == 0 {
		return nil
	}
	return tx.Omit("Patient", "Doctor", "Report").Create(&consultations).Error
}

func seedLabResults(tx *gorm.DB, patients, doctors []entity.User) error {
	now := time.Now().UTC()
	var labResults []entity.LabResult
	for _, p := range patients {
		orderedBy := doctors[gofakeit.Number(0, len(doctors)-1)].ID
		normalRange := fmt.Sprintf("%d-%d", gofakeit.Number(1, 50), gofakeit.Number(51, 200))
		labResults = append(labResults, entity.LabResult{
			PatientID:   p.ID,
			OrderedBy:   &orderedBy,
			TestName:    pick(labTests),
			TestDate:    gofakeit.DateRange(now.AddDate(0, -6, 0), now),
			Results:     words(6),
			NormalRange: &normalRange,
			Status:      entity.LabResultStatus(pick([]string{"normal", "abnormal", "critical"})),
			LabFacility: &entity.LabFacility{
				Name:    gofakeit.Company(),
				Address: gofakeit.Street() + ", " + gofakeit.City(),
				Contact: gofakeit.Phone(),
			},
		})
	}
	return tx.Omit("Patient", "Orderer").Create(&labResults).Error
}

func seedAlerts(tx *gorm.DB, reports []entity.SymptomReport, patients []entity.User) error {
	city, country := gofakeit.City(), gofakeit.Country()
	lon, lat, radius := gofakeit.Longitude(), gofakeit.Latitude(), 25.0
	affected := len(reports)
	expires := time.Now().UTC().AddDate(0, 0, 14)

	alerts := []entity.Alert{
		{
			Type:           entity.AlertTypeOutbreak,
			Title:          "Respiratory illness cluster in " + city,
			Message:        words(20),
			Severity:       entity.AlertSeverityCritical,
			TargetRoles:    []string{entity.RolePatient},
			GeographicArea: entity.GeographicArea{Country: &country, City: &city, Longitude: &lon, Latitude: &lat, RadiusKm: &radius},
			SymptomPattern: []string{"fever", "cough", "shortness of breath"},
			AffectedCount:  &affected,
			ExpiresAt:      &expires,
			IsActive:       true,
		},
		{
			Type:           entity.AlertTypeSystem,
			Title:          "Scheduled maintenance",
			Message:        words(12),
			Severity:       entity.AlertSeverityLow,
			TargetRoles:    pq.StringArray{},
			SymptomPattern: pq.StringArray{},
			IsActive:       true,
		},
		{
			Type:           entity.AlertTypeSystem,
			Title:          "Updated triage guidelines",
			Message:        words(16),
			Severity:       entity.AlertSeverityMedium,
			TargetRoles:    []string{entity.RoleDoctor},
			SymptomPattern: pq.StringArray{},
			IsActive:       true,
		},
	}
	if err := tx.Omit(clause.Associations).Create(&alerts).Error; err != nil {
		return err
	}

	var related []entity.AlertRelatedReport
	for i := range reports {
		if i >= 5 {
			break
		}
		related = append(related, entity.AlertRelatedReport{AlertID: alerts[0].ID, SymptomReportID: reports[i].ID})
	}
	if len(related) > 0 {
		if err := tx.Create(&related).Error; err != nil {
			return err
		}
	}

	// One personal alert for the first patient
	personal := entity.Alert{
		ID:             uuid.New(),
		Type:           entity.AlertTypeLabResult,
		Title:          "New lab result available",
		Message:        words(10),
		Severity:       entity.AlertSeverityHigh,
		TargetRoles:    pq.StringArray{},
		SymptomPattern: pq.StringArray{},
		IsActive:       true,
	}
	if err := tx.Omit(clause.Associations).Create(&personal).Error; err != nil {
		return err
	}
	return tx.Create(&entity.AlertTargetUser{AlertID: personal.ID, UserID: patients[0].ID}).Error
}
