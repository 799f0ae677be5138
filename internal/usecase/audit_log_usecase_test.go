package usecase

import (
	"context"
	"testing"
	"time"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase_List(t *testing.T) {
	repo := &mockAuditLogRepository{}
	uc := NewAuditLogUsecase(testLogger(), repo)
	actor := uuid.New()

	_, err := uc.List(context.Background(), patientIdentity(), &dto.AuditLogListQuery{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, ErrAuditLogDoctorOnly)

	_, err = uc.List(context.Background(), doctorIdentity(), &dto.AuditLogListQuery{UserID: "nope", Page: 1, Limit: 10})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "userId")

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f *entity.AuditLogFilter) bool {
		return f.UserID != nil && *f.UserID == actor && f.Action == "alert." && f.Page == 2 && f.Limit == 1
	})).Return([]entity.AuditLog{{
		ID:        7,
		UserID:    &actor,
		Action:    entity.AuditActionAlertCreate,
		Metadata:  entity.JSON{"entity_id": "a1"},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}}, int64(3), nil)

	resp, err := uc.List(context.Background(), doctorIdentity(), &dto.AuditLogListQuery{UserID: actor.String(), Action: "alert.", Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, int64(7), resp.Logs[0].ID)
	assert.Equal(t, "a1", resp.Logs[0].Metadata["entity_id"])
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestAuditLogUsecase_GetByID(t *testing.T) {
	repo := &mockAuditLogRepository{}
	uc := NewAuditLogUsecase(testLogger(), repo)
	repo.On("FindByID", mock.Anything, int64(1)).Return(&entity.AuditLog{ID: 1, Action: entity.AuditActionAlertExpire}, nil)
	repo.On("FindByID", mock.Anything, int64(2)).Return(nil, nil)

	_, err := uc.GetByID(context.Background(), patientIdentity(), 1)
	assert.ErrorIs(t, err, ErrAuditLogDoctorOnly)

	_, err = uc.GetByID(context.Background(), doctorIdentity(), 2)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)

	resp, err := uc.GetByID(context.Background(), doctorIdentity(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.UserID)
	assert.Equal(t, entity.AuditActionAlertExpire, resp.Action)
}
