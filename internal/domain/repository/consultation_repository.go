package repository

import (
	"context"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error)
	FindAll(ctx context.Context, filter *entity.ConsultationFilter) ([]entity.Consultation, int64, error)
	Update(ctx context.Context, consultation *entity.Consultation) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
