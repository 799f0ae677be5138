package repository

import (
	"context"
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) domainRepo.ConsultationRepository {
	return &consultationRepository{db: db}
}

func preloadParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Doctor").Preload("Report")
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	return r.db.WithContext(ctx).Omit("Patient", "Doctor", "Report").Create(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := r.db.WithContext(ctx).Scopes(preloadParticipants).Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) filtered(ctx context.Context, filter *entity.ConsultationFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Consultation{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Day != nil {
		query = query.Where("scheduled_at >= ? AND scheduled_at < ?", *filter.Day, filter.Day.AddDate(0, 0, 1))
	}
	return query
}

func (r *consultationRepository) FindAll(ctx context.Context, filter *entity.ConsultationFilter) ([]entity.Consultation, int64, error) {
	var consultations []entity.Consultation
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).
		Scopes(preloadParticipants).
		Order("scheduled_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}

	return consultations, total, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *entity.Consultation) (int64, error) {
	result := r.db.WithContext(ctx).Model(consultation).Select("*").Omit("Patient", "Doctor", "Report").Updates(consultation)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Consultation{})
	return result.RowsAffected, result.Error
}
