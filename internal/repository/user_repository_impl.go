package repository

import (
	"context"
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) (int64, error) {
	result := r.db.WithContext(ctx).Model(user).Select("*").Updates(user)
	return result.RowsAffected, result.Error
}

func (r *userRepository) doctors(ctx context.Context, filter *entity.DoctorFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.User{}).Where("role = ?", entity.RoleDoctor)
	if filter.Specialization != "" {
		query = query.Where("specialization ILIKE ?", "%"+escapeLike(filter.Specialization)+"%")
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}
	return query
}

func (r *userRepository) FindDoctors(ctx context.Context, filter *entity.DoctorFilter) ([]entity.User, int64, error) {
	var doctors []entity.User
	var total int64

	if err := r.doctors(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.doctors(ctx, filter).
		Order("last_name ASC").
		Order("first_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}
