package repository

import (
	"context"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (int64, error)
	FindDoctors(ctx context.Context, filter *entity.DoctorFilter) ([]entity.User, int64, error)
}
