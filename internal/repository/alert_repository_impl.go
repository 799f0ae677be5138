package repository

import (
	"context"
	"errors"
	"time"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// visibilityCondition mirrors entity.Alert.IsVisibleTo: targeted at the user, at the role, or at nobody.
const visibilityCondition = `(EXISTS (SELECT 1 FROM alert_target_users atu WHERE atu.alert_id = alerts.id AND atu.user_id = ?)` +
	` OR ? = ANY(alerts.target_roles)` +
	` OR (cardinality(alerts.target_roles) = 0 AND NOT EXISTS (SELECT 1 FROM alert_target_users atu WHERE atu.alert_id = alerts.id)))`

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) domainRepo.AlertRepository {
	return &alertRepository{db: db}
}

func visibleTo(viewer entity.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(visibilityCondition, viewer.UserID, viewer.Role)
	}
}

func preloadAlertRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TargetUsers", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "role")
		}).
		Preload("RelatedReports")
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(alert).Error; err != nil {
			return err
		}
		if err := insertTargetUsers(tx, alert); err != nil {
			return err
		}
		return insertRelatedReports(tx, alert)
	})
}

func insertTargetUsers(tx *gorm.DB, alert *entity.Alert) error {
	if len(alert.TargetUsers) == 0 {
		return nil
	}
	rows := make([]entity.AlertTargetUser, len(alert.TargetUsers))
	for i, u := range alert.TargetUsers {
		rows[i] = entity.AlertTargetUser{AlertID: alert.ID, UserID: u.ID}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func insertRelatedReports(tx *gorm.DB, alert *entity.Alert) error {
	if len(alert.RelatedReports) == 0 {
		return nil
	}
	rows := make([]entity.AlertRelatedReport, len(alert.RelatedReports))
	for i, rep := range alert.RelatedReports {
		rows[i] = entity.AlertRelatedReport{AlertID: alert.ID, SymptomReportID: rep.ID}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *alertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	var alert entity.Alert
	err := r.db.WithContext(ctx).Scopes(preloadAlertRelations).Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) filtered(ctx context.Context, filter *entity.AlertFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Alert{}).
		Scopes(visibleTo(filter.Viewer)).
		Where("alerts.is_active = ?", filter.IsActive)

	if filter.Type != nil {
		query = query.Where("alerts.type = ?", *filter.Type)
	}
	if filter.Severity != nil {
		query = query.Where("alerts.severity = ?", *filter.Severity)
	}
	return query
}

func (r *alertRepository) FindVisible(ctx context.Context, filter *entity.AlertFilter) ([]entity.Alert, int64, error) {
	var alerts []entity.Alert
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).
		Scopes(preloadAlertRelations).
		Order(entity.SeverityRankExpr("alerts.severity") + " DESC").
		Order("alerts.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// Update writes every column of an existing alert. A row removed since it was
// loaded is reported as zero rows affected and never re-inserted.
func (r *alertRepository) Update(ctx context.Context, alert *entity.Alert, replaceRelated bool) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(alert).Select("*").Omit(clause.Associations).Updates(alert)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 || !replaceRelated {
			return nil
		}
		if err := tx.Where("alert_id = ?", alert.ID).Delete(&entity.AlertRelatedReport{}).Error; err != nil {
			return err
		}
		return insertRelatedReports(tx, alert)
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *alertRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Alert{})
	return result.RowsAffected, result.Error
}

// DeleteExpired removes the oldest expired alerts first, at most limit per call.
func (r *alertRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		`DELETE FROM alerts WHERE id IN (SELECT id FROM alerts WHERE expires_at IS NOT NULL AND expires_at <= ? ORDER BY expires_at LIMIT ?)`,
		now, limit,
	)
	return result.RowsAffected, result.Error
}

// MarkRead inserts the receipt row and leaves an existing one untouched.
func (r *alertRepository) MarkRead(ctx context.Context, read *entity.AlertRead) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(read).Error
}

func (r *alertRepository) FindReadAlertIDs(ctx context.Context, userID uuid.UUID, alertIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	read := make(map[uuid.UUID]bool, len(alertIDs))
	if len(alertIDs) == 0 {
		return read, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.AlertRead{}).
		Where("user_id = ? AND alert_id IN ?", userID, alertIDs).
		Pluck("alert_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		read[id] = true
	}
	return read, nil
}

func (r *alertRepository) CountUnread(ctx context.Context, viewer entity.Identity) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Alert{}).
		Scopes(visibleTo(viewer)).
		Where("alerts.is_active = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM alert_reads ar WHERE ar.alert_id = alerts.id AND ar.user_id = ?)", viewer.UserID).
		Count(&total).Error
	return total, err
}
