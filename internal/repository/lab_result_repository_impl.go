package repository

import (
	"context"
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labResultRepository struct {
	db *gorm.DB
}

func NewLabResultRepository(db *gorm.DB) domainRepo.LabResultRepository {
	return &labResultRepository{db: db}
}

func (r *labResultRepository) Create(ctx context.Context, labResult *entity.LabResult) error {
	return r.db.WithContext(ctx).Omit("Patient", "Orderer").Create(labResult).Error
}

func (r *labResultRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LabResult, error) {
	var labResult entity.LabResult
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Orderer").
		Where("id = ?", id).
		First(&labResult).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &labResult, nil
}

func (r *labResultRepository) filtered(ctx context.Context, filter *entity.LabResultFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.LabResult{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TestName != "" {
		query = query.Where("test_name ILIKE ?", "%"+escapeLike(filter.TestName)+"%")
	}
	return query
}

func (r *labResultRepository) FindAll(ctx context.Context, filter *entity.LabResultFilter) ([]entity.LabResult, int64, error) {
	var labResults []entity.LabResult
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).
		Preload("Patient").
		Preload("Orderer").
		Order("test_date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&labResults).Error
	if err != nil {
		return nil, 0, err
	}

	return labResults, total, nil
}

func (r *labResultRepository) Update(ctx context.Context, labResult *entity.LabResult) (int64, error) {
	result := r.db.WithContext(ctx).Model(labResult).Select("*").Omit("Patient", "Orderer").Updates(labResult)
	return result.RowsAffected, result.Error
}

func (r *labResultRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.LabResult{})
	return result.RowsAffected, result.Error
}
