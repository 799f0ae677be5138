package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorProfileUsecase is the read-only doctor directory patients book against.
type DoctorProfileUsecase interface {
	List(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDoctorProfileUsecase(log *logrus.Logger, userRepo repository.UserRepository) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		log:      log,
		userRepo: userRepo,
	}
}

func (u *doctorProfileUsecase) List(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, error) {
	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	doctors, total, err := u.userRepo.FindDoctors(ctx, &entity.DoctorFilter{
		Pagination:     pagination,
		Specialization: query.Specialization,
		Search:         query.Search,
	})
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

func (u *doctorProfileUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(user), nil
}
