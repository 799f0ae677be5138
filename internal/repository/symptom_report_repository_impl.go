package repository

import (
	"context"
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type symptomReportRepository struct {
	db *gorm.DB
}

func NewSymptomReportRepository(db *gorm.DB) domainRepo.SymptomReportRepository {
	return &symptomReportRepository{db: db}
}

func (r *symptomReportRepository) Create(ctx context.Context, report *entity.SymptomReport) error {
	return r.db.WithContext(ctx).Omit("Patient", "Reviewer").Create(report).Error
}

func (r *symptomReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SymptomReport, error) {
	var report entity.SymptomReport
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Reviewer").
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *symptomReportRepository) filtered(ctx context.Context, filter *entity.ReportFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.SymptomReport{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	return query
}

func (r *symptomReportRepository) FindAll(ctx context.Context, filter *entity.ReportFilter) ([]entity.SymptomReport, int64, error) {
	var reports []entity.SymptomReport
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).
		Preload("Patient").
		Preload("Reviewer").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *symptomReportRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.SymptomReport, error) {
	var reports []entity.SymptomReport
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *symptomReportRepository) Update(ctx context.Context, report *entity.SymptomReport) (int64, error) {
	result := r.db.WithContext(ctx).Model(report).Select("*").Omit("Patient", "Reviewer").Updates(report)
	return result.RowsAffected, result.Error
}

func (r *symptomReportRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SymptomReport{})
	return result.RowsAffected, result.Error
}
