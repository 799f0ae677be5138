package usecase

import (
	"context"
	"errors"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlertNotFound     = errors.New("alert not found")
	ErrAlertAccessDenied = errors.New("alert is not targeted at you")
	ErrAlertDoctorOnly   = errors.New("only doctors can manage alerts")
	ErrAlertReactivation = errors.New("a deactivated alert cannot be reactivated")
)

type AlertUsecase interface {
	Create(ctx context.Context, actor entity.Identity, req *dto.CreateAlertRequest) (*dto.AlertResponse, error)
	List(ctx context.Context, viewer entity.Identity, query *dto.AlertListQuery) (*dto.AlertListResponse, error)
	GetByID(ctx context.Context, viewer entity.Identity, id uuid.UUID) (*dto.AlertResponse, error)
	MarkRead(ctx context.Context, viewer entity.Identity, id uuid.UUID) error
	Update(ctx context.Context, actor entity.Identity, id uuid.UUID, req *dto.UpdateAlertRequest) (*dto.AlertResponse, error)
	Delete(ctx context.Context, actor entity.Identity, id uuid.UUID) error
	UnreadCount(ctx context.Context, viewer entity.Identity) (*dto.UnreadCountResponse, error)
}

type alertUsecase struct {
	log          *logrus.Logger
	alertRepo    repository.AlertRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewAlertUsecase(log *logrus.Logger, alertRepo repository.AlertRepository, auditService service.AuditService) AlertUsecase {
	return &alertUsecase{
		log:          log,
		alertRepo:    alertRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *alertUsecase) Create(ctx context.Context, actor entity.Identity, req *dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if !actor.IsDoctor() {
		return nil, ErrAlertDoctorOnly
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(u.now()) {
		return nil, newValidationError("expiresAt", "expiresAt must be in the future")
	}

	alert := &entity.Alert{
		Type:           entity.AlertType(req.Type),
		Title:          req.Title,
		Message:        req.Message,
		Severity:       entity.AlertSeverity(req.Severity),
		TargetRoles:    stringArray(uniqueStrings(req.TargetRoles)),
		SymptomPattern: stringArray(nil),
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
	}
	for _, id := range uniqueIDs(req.TargetUsers) {
		alert.TargetUsers = append(alert.TargetUsers, entity.User{ID: id})
	}
	if req.GeographicArea != nil {
		alert.GeographicArea = geographicAreaFromRequest(req.GeographicArea)
	}
	if req.Metadata != nil {
		applyAlertMetadata(alert, req.Metadata)
	}

	if err := u.alertRepo.Create(ctx, alert); err != nil {
		if vErr := alertReferenceError(err); vErr != nil {
			return nil, vErr
		}
		u.log.Warnf("Failed to create alert: %+v", err)
		return nil, err
	}

	created, err := u.alertRepo.FindByID(ctx, alert.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload alert %s: %+v", alert.ID, err)
		created = alert
	}

	resp := converter.AlertToResponse(created, false)
	u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionAlertCreate, "alert", alert.ID.String(), resp)
	u.log.Infof("Alert created: id=%s, type=%s, severity=%s", alert.ID, alert.Type, alert.Severity)

	return resp, nil
}

func (u *alertUsecase) List(ctx context.Context, viewer entity.Identity, query *dto.AlertListQuery) (*dto.AlertListResponse, error) {
	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	filter := &entity.AlertFilter{
		Pagination: pagination,
		Viewer:     viewer,
		IsActive:   query.IsActive,
	}
	if query.Type != "" {
		t := entity.AlertType(query.Type)
		filter.Type = &t
	}
	if query.Severity != "" {
		s := entity.AlertSeverity(query.Severity)
		if !s.IsValid() {
			return nil, newValidationError("severity", "severity must be one of [low medium high critical]")
		}
		filter.Severity = &s
	}

	alerts, total, err := u.alertRepo.FindVisible(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list alerts for user %s: %+v", viewer.UserID, err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(alerts))
	for i := range alerts {
		ids[i] = alerts[i].ID
	}
	read, err := u.alertRepo.FindReadAlertIDs(ctx, viewer.UserID, ids)
	if err != nil {
		u.log.Warnf("Failed to load read receipts for user %s: %+v", viewer.UserID, err)
		return nil, err
	}

	return &dto.AlertListResponse{
		Alerts: converter.AlertsToResponses(alerts, read),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

// findVisible loads the alert and applies the visibility rule: absent is
// ErrAlertNotFound, present but not targeted at viewer is ErrAlertAccessDenied.
func (u *alertUsecase) findVisible(ctx context.Context, viewer entity.Identity, id uuid.UUID) (*entity.Alert, error) {
	alert, err := u.alertRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find alert %s: %+v", id, err)
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}
	if !alert.IsVisibleTo(viewer) {
		return nil, ErrAlertAccessDenied
	}
	return alert, nil
}

func (u *alertUsecase) GetByID(ctx context.Context, viewer entity.Identity, id uuid.UUID) (*dto.AlertResponse, error) {
	alert, err := u.findVisible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	read, err := u.alertRepo.FindReadAlertIDs(ctx, viewer.UserID, []uuid.UUID{alert.ID})
	if err != nil {
		u.log.Warnf("Failed to load read receipt for alert %s: %+v", id, err)
		return nil, err
	}

	return converter.AlertToResponse(alert, read[alert.ID]), nil
}

// MarkRead is idempotent and only ever touches the viewer's own receipt.
func (u *alertUsecase) MarkRead(ctx context.Context, viewer entity.Identity, id uuid.UUID) error {
	if _, err := u.findVisible(ctx, viewer, id); err != nil {
		return err
	}

	receipt := &entity.AlertRead{
		AlertID: id,
		UserID:  viewer.UserID,
		ReadAt:  u.now(),
	}
	if err := u.alertRepo.MarkRead(ctx, receipt); err != nil {
		u.log.Warnf("Failed to mark alert %s read for user %s: %+v", id, viewer.UserID, err)
		return err
	}

	return nil
}

func (u *alertUsecase) Update(ctx context.Context, actor entity.Identity, id uuid.UUID, req *dto.UpdateAlertRequest) (*dto.AlertResponse, error) {
	if !actor.IsDoctor() {
		return nil, ErrAlertDoctorOnly
	}

	alert, err := u.alertRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find alert %s: %+v", id, err)
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}

	oldValue := converter.AlertToResponse(alert, false)

	if req.IsActive != nil {
		switch {
		case *req.IsActive && !alert.IsActive:
			return nil, ErrAlertReactivation
		case !*req.IsActive:
			alert.Deactivate()
		}
	}
	if req.Title != nil {
		alert.Title = *req.Title
	}
	if req.Message != nil {
		alert.Message = *req.Message
	}
	if req.Severity != nil {
		alert.Severity = entity.AlertSeverity(*req.Severity)
	}
	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(u.now()) {
			return nil, newValidationError("expiresAt", "expiresAt must be in the future")
		}
		alert.ExpiresAt = req.ExpiresAt
	}

	replaceRelated := false
	if req.Metadata != nil {
		applyAlertMetadata(alert, req.Metadata)
		replaceRelated = true
	}

	affected, err := u.alertRepo.Update(ctx, alert, replaceRelated)
	if err != nil {
		if vErr := alertReferenceError(err); vErr != nil {
			return nil, vErr
		}
		u.log.Warnf("Failed to update alert %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlertNotFound
	}

	updated, err := u.alertRepo.FindByID(ctx, id)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload alert %s: %+v", id, err)
		updated = alert
	}

	resp := converter.AlertToResponse(updated, false)
	u.auditService.LogUpdate(ctx, &actor.UserID, entity.AuditActionAlertUpdate, "alert", id.String(), oldValue, resp)

	return resp, nil
}

func (u *alertUsecase) Delete(ctx context.Context, actor entity.Identity, id uuid.UUID) error {
	if !actor.IsDoctor() {
		return ErrAlertDoctorOnly
	}

	alert, err := u.alertRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find alert %s: %+v", id, err)
		return err
	}
	if alert == nil {
		return ErrAlertNotFound
	}

	affected, err := u.alertRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete alert %s: %+v", id, err)
		return err
	}
	// Swept or deleted concurrently
	if affected == 0 {
		return ErrAlertNotFound
	}

	u.auditService.LogDelete(ctx, &actor.UserID, entity.AuditActionAlertDelete, "alert", id.String(), converter.AlertToResponse(alert, false))
	u.log.Infof("Alert deleted: id=%s", id)

	return nil
}

func (u *alertUsecase) UnreadCount(ctx context.Context, viewer entity.Identity) (*dto.UnreadCountResponse, error) {
	count, err := u.alertRepo.CountUnread(ctx, viewer)
	if err != nil {
		u.log.Warnf("Failed to count unread alerts for user %s: %+v", viewer.UserID, err)
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func geographicAreaFromRequest(req *dto.GeographicAreaRequest) entity.GeographicArea {
	area := entity.GeographicArea{
		Country:  req.Country,
		Region:   req.Region,
		City:     req.City,
		RadiusKm: req.Radius,
	}
	if req.Coordinates != nil {
		area.Longitude = req.Coordinates.Longitude
		area.Latitude = req.Coordinates.Latitude
	}
	return area
}

// applyAlertMetadata replaces the whole metadata block.
func applyAlertMetadata(alert *entity.Alert, req *dto.AlertMetadataRequest) {
	alert.SymptomPattern = stringArray(req.SymptomPattern)
	alert.AffectedCount = req.AffectedCount
	alert.RelatedReports = nil
	for _, id := range uniqueIDs(req.RelatedReports) {
		alert.RelatedReports = append(alert.RelatedReports, entity.SymptomReport{ID: id})
	}
}

// alertReferenceError turns a dangling target user or related report into a ValidationError.
func alertReferenceError(err error) error {
	switch {
	case isForeignKeyError(err, "user_id"):
		return newValidationError("targetUsers", "targetUsers contains an unknown user")
	case isForeignKeyError(err, "symptom_report_id"):
		return newValidationError("metadata.relatedReports", "metadata.relatedReports contains an unknown report")
	default:
		return nil
	}
}
