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

var (
	ErrAuditLogNotFound   = errors.New("audit log not found")
	ErrAuditLogDoctorOnly = errors.New("only doctors can read the audit trail")
)

type AuditLogUsecase interface {
	List(ctx context.Context, caller entity.Identity, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error)
	GetByID(ctx context.Context, caller entity.Identity, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, caller entity.Identity, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrAuditLogDoctorOnly
	}

	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	filter := &entity.AuditLogFilter{Pagination: pagination, Action: query.Action}
	if query.UserID != "" {
		userID, err := uuid.Parse(query.UserID)
		if err != nil {
			return nil, newValidationError("userId", "userId must be a valid UUID")
		}
		filter.UserID = &userID
	}

	logs, total, err := u.auditLogRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs: converter.AuditLogsToResponses(logs),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, caller entity.Identity, id int64) (*dto.AuditLogResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrAuditLogDoctorOnly
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log by ID: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
