package usecase

import (
	"context"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
)

type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, caller entity.Identity, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type profileUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewProfileUsecase(log *logrus.Logger, userRepo repository.UserRepository, auditService service.AuditService) ProfileUsecase {
	return &profileUsecase{
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// UpdateProfile applies the caller's own profile changes. Specialization is doctor-only,
// dateOfBirth and gender are patient-only; email and role never change.
func (u *profileUsecase) UpdateProfile(ctx context.Context, caller entity.Identity, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]string{}
	if req.Specialization != nil && !caller.IsDoctor() {
		fields["specialization"] = "specialization can only be updated by doctors"
	}
	if req.DateOfBirth != nil && !caller.IsPatient() {
		fields["dateOfBirth"] = "dateOfBirth can only be updated by patients"
	}
	if req.Gender != nil && !caller.IsPatient() {
		fields["gender"] = "gender can only be updated by patients"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := u.userRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Specialization != nil {
		user.Specialization = req.Specialization
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, newValidationError("dateOfBirth", "dateOfBirth must be a valid date (YYYY-MM-DD)")
		}
		user.DateOfBirth = dob
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}

	affected, err := u.userRepo.Update(ctx, user)
	if err != nil {
		u.log.Warnf("Failed to update user %s: %+v", user.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	resp := converter.UserToResponse(user)
	u.auditService.LogUpdate(ctx, &user.ID, entity.AuditActionProfileUpdate, "user", user.ID.String(), oldValue, resp)

	return resp, nil
}
