package repository

import (
	"context"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

type LabResultRepository interface {
	Create(ctx context.Context, labResult *entity.LabResult) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LabResult, error)
	FindAll(ctx context.Context, filter *entity.LabResultFilter) ([]entity.LabResult, int64, error)
	Update(ctx context.Context, labResult *entity.LabResult) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
