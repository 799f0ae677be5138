package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
)

func formatDate(user *entity.User) *string {
	if user.DateOfBirth == nil {
		return nil
	}
	s := user.DateOfBirth.Format(validator.DateLayout)
	return &s
}

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		Phone:          user.Phone,
		Specialization: user.Specialization,
		DateOfBirth:    formatDate(user),
		Gender:         user.Gender,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// UserToRef returns an expanded reference when user was loaded, otherwise a bare id.
func UserToRef(id uuid.UUID, user *entity.User) dto.UserRef {
	ref := dto.UserRef{ID: id}
	if user == nil || user.ID == uuid.Nil {
		return ref
	}

	ref.Profile = &dto.UserSummary{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           user.Role,
		Phone:          user.Phone,
		Specialization: user.Specialization,
		DateOfBirth:    formatDate(user),
		Gender:         user.Gender,
	}
	return ref
}

// OptionalUserToRef is UserToRef for nullable foreign keys.
func OptionalUserToRef(id *uuid.UUID, user *entity.User) *dto.UserRef {
	if id == nil {
		return nil
	}
	ref := UserToRef(*id, user)
	return &ref
}

func DoctorToResponse(user *entity.User) *dto.DoctorResponse {
	if user == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Specialization: user.Specialization,
	}
}

func DoctorsToResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = *DoctorToResponse(&users[i])
	}
	return responses
}
