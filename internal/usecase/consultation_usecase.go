package usecase

import (
	"context"
	"errors"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrConsultationNotFound          = errors.New("consultation not found")
	ErrConsultationAccessDenied      = errors.New("access denied to this consultation")
	ErrConsultationPatientCancelOnly = errors.New("patients can only cancel consultations")
)

type ConsultationUsecase interface {
	Create(ctx context.Context, caller entity.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	List(ctx context.Context, caller entity.Identity, query *dto.ConsultationListQuery) (*dto.ConsultationListResponse, error)
	GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ConsultationResponse, error)
	Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error)
	Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error
}

type consultationUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	userRepo         repository.UserRepository
	auditService     service.AuditService
}

func NewConsultationUsecase(
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		auditService:     auditService,
	}
}

// Create books a consultation. Patients may only book for themselves; doctors book for any patient.
func (u *consultationUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	var patientID uuid.UUID
	switch {
	case caller.IsPatient():
		if req.PatientID != nil && *req.PatientID != caller.UserID {
			return nil, ErrConsultationAccessDenied
		}
		patientID = caller.UserID
	case caller.IsDoctor():
		if req.PatientID == nil || *req.PatientID == uuid.Nil {
			return nil, newValidationError("patientId", "patientId is required")
		}
		patientID = *req.PatientID
	default:
		return nil, ErrConsultationAccessDenied
	}

	if err := u.requireRole(ctx, req.DoctorID, entity.RoleDoctor, "doctorId"); err != nil {
		return nil, err
	}
	if err := u.requireRole(ctx, patientID, entity.RolePatient, "patientId"); err != nil {
		return nil, err
	}

	consultation := &entity.Consultation{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		ReportID:    req.ReportID,
		ScheduledAt: req.ScheduledAt,
		Status:      entity.ConsultationStatusScheduled,
		Type:        entity.ConsultationType(req.Type),
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		if isForeignKeyError(err, "report_id") {
			return nil, newValidationError("reportId", "reportId must reference an existing symptom report")
		}
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	created, err := u.consultationRepo.FindByID(ctx, consultation.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload consultation %s: %+v", consultation.ID, err)
		created = consultation
	}

	resp := converter.ConsultationToResponse(created)
	u.auditService.LogCreate(ctx, &caller.UserID, entity.AuditActionConsultationCreate, "consultation", consultation.ID.String(), resp)

	return resp, nil
}

// requireRole checks that id names an existing user holding role.
func (u *consultationUsecase) requireRole(ctx context.Context, id uuid.UUID, role string, field string) error {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil || user.Role != role {
		return newValidationError(field, field+" must reference an existing "+role)
	}
	return nil
}

func (u *consultationUsecase) List(ctx context.Context, caller entity.Identity, query *dto.ConsultationListQuery) (*dto.ConsultationListResponse, error) {
	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	filter := &entity.ConsultationFilter{Pagination: pagination}
	switch {
	case caller.IsPatient():
		filter.PatientID = &caller.UserID
	case caller.IsDoctor():
		filter.DoctorID = &caller.UserID
	default:
		return nil, ErrConsultationAccessDenied
	}

	if query.Status != "" {
		s := entity.ConsultationStatus(query.Status)
		filter.Status = &s
	}
	if query.Type != "" {
		t := entity.ConsultationType(query.Type)
		filter.Type = &t
	}
	if query.Date != "" {
		day, err := parseDate(&query.Date)
		if err != nil {
			return nil, newValidationError("date", "date must be a valid date (YYYY-MM-DD)")
		}
		filter.Day = day
	}

	consultations, total, err := u.consultationRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

func (u *consultationUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ConsultationResponse, error) {
	consultation, err := u.findForParticipant(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return converter.ConsultationToResponse(consultation), nil
}

// Update applies a participant's changes. A patient may only send {status: "cancelled"}.
func (u *consultationUsecase) Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error) {
	consultation, err := u.findForParticipant(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if caller.IsPatient() && !req.IsPatientCancellation() {
		return nil, ErrConsultationPatientCancelOnly
	}

	oldValue := converter.ConsultationToResponse(consultation)

	if req.Status != nil {
		consultation.Status = entity.ConsultationStatus(*req.Status)
	}
	if req.Notes != nil {
		consultation.Notes = req.Notes
	}
	if req.Prescription != nil {
		prescription := &entity.Prescription{Notes: req.Prescription.Notes}
		for _, m := range req.Prescription.Medications {
			prescription.Medications = append(prescription.Medications, entity.Medication{
				Name:         m.Name,
				Dosage:       m.Dosage,
				Frequency:    m.Frequency,
				Duration:     m.Duration,
				Instructions: m.Instructions,
			})
		}
		consultation.Prescription = prescription
	}
	if req.FollowUp != nil {
		consultation.FollowUp = &entity.FollowUp{
			Required:      req.FollowUp.Required,
			ScheduledDate: req.FollowUp.ScheduledDate,
			Instructions:  req.FollowUp.Instructions,
		}
	}
	if req.Duration != nil {
		consultation.Duration = req.Duration
	}
	if req.MeetingURL != nil {
		consultation.MeetingURL = req.MeetingURL
	}

	affected, err := u.consultationRepo.Update(ctx, consultation)
	if err != nil {
		u.log.Warnf("Failed to update consultation %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConsultationNotFound
	}

	resp := converter.ConsultationToResponse(consultation)
	u.auditService.LogUpdate(ctx, &caller.UserID, entity.AuditActionConsultationUpdate, "consultation", id.String(), oldValue, resp)

	return resp, nil
}

func (u *consultationUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	consultation, err := u.findForParticipant(ctx, caller, id)
	if err != nil {
		return err
	}

	affected, err := u.consultationRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete consultation %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrConsultationNotFound
	}

	u.auditService.LogDelete(ctx, &caller.UserID, entity.AuditActionConsultationDelete, "consultation", id.String(), converter.ConsultationToResponse(consultation))

	return nil
}

func (u *consultationUsecase) findForParticipant(ctx context.Context, caller entity.Identity, id uuid.UUID) (*entity.Consultation, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.IsParticipant(caller) {
		return nil, ErrConsultationAccessDenied
	}
	return consultation, nil
}
