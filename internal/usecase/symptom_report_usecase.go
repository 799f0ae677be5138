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
	ErrReportNotFound     = errors.New("symptom report not found")
	ErrReportAccessDenied = errors.New("access denied to this symptom report")
	ErrReportPatientOnly  = errors.New("only patients can submit symptom reports")
	ErrReportDoctorOnly   = errors.New("only doctors can manage symptom reports")
)

type SymptomReportUsecase interface {
	Create(ctx context.Context, caller entity.Identity, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	List(ctx context.Context, caller entity.Identity, query *dto.ReportListQuery) (*dto.ReportListResponse, error)
	ListByPatient(ctx context.Context, caller entity.Identity, patientID uuid.UUID) ([]dto.ReportResponse, error)
	GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ReportResponse, error)
	Review(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.ReviewReportRequest) (*dto.ReportResponse, error)
	Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error
}

type symptomReportUsecase struct {
	log          *logrus.Logger
	reportRepo   repository.SymptomReportRepository
	auditService service.AuditService
}

func NewSymptomReportUsecase(log *logrus.Logger, reportRepo repository.SymptomReportRepository, auditService service.AuditService) SymptomReportUsecase {
	return &symptomReportUsecase{
		log:          log,
		reportRepo:   reportRepo,
		auditService: auditService,
	}
}

func (u *symptomReportUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if !caller.IsPatient() {
		return nil, ErrReportPatientOnly
	}

	report := &entity.SymptomReport{
		PatientID:       caller.UserID,
		Symptoms:        req.Symptoms,
		Description:     req.Description,
		AudioTranscript: req.AudioTranscript,
		Severity:        entity.ReportSeverity(req.Severity),
		Duration:        req.Duration,
		Status:          entity.ReportStatusPending,
		AIAnalysis:      entity.AIAnalysis{
			PossibleConditions: stringArray(nil),
			RecommendedActions: stringArray(nil),
		},
	}

	if err := u.reportRepo.Create(ctx, report); err != nil {
		u.log.Warnf("Failed to create symptom report: %+v", err)
		return nil, err
	}

	resp := converter.ReportToResponse(report)
	u.auditService.LogCreate(ctx, &caller.UserID, entity.AuditActionReportCreate, "symptom_report", report.ID.String(), resp)

	return resp, nil
}

func (u *symptomReportUsecase) List(ctx context.Context, caller entity.Identity, query *dto.ReportListQuery) (*dto.ReportListResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrReportDoctorOnly
	}

	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	filter := &entity.ReportFilter{Pagination: pagination}
	if query.Status != "" {
		s := entity.ReportStatus(query.Status)
		filter.Status = &s
	}
	if query.Severity != "" {
		s := entity.ReportSeverity(query.Severity)
		filter.Severity = &s
	}

	reports, total, err := u.reportRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list symptom reports: %+v", err)
		return nil, err
	}

	return &dto.ReportListResponse{
		Reports: converter.ReportsToResponses(reports),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

func (u *symptomReportUsecase) ListByPatient(ctx context.Context, caller entity.Identity, patientID uuid.UUID) ([]dto.ReportResponse, error) {
	if caller.IsPatient() && caller.UserID != patientID {
		return nil, ErrReportAccessDenied
	}

	reports, err := u.reportRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list symptom reports for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.ReportsToResponses(reports), nil
}

func (u *symptomReportUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.ReportResponse, error) {
	report, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsPatient() && !report.IsOwnedBy(caller.UserID) {
		return nil, ErrReportAccessDenied
	}

	return converter.ReportToResponse(report), nil
}

// Review records the calling doctor as reviewer on every call.
func (u *symptomReportUsecase) Review(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.ReviewReportRequest) (*dto.ReportResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrReportDoctorOnly
	}

	report, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValue := converter.ReportToResponse(report)

	if req.Status != nil {
		report.Status = entity.ReportStatus(*req.Status)
	}
	if req.ReviewNotes != nil {
		report.ReviewNotes = req.ReviewNotes
	}
	if req.AIAnalysis != nil {
		report.AIAnalysis = entity.AIAnalysis{
			PossibleConditions: stringArray(req.AIAnalysis.PossibleConditions),
			RecommendedActions: stringArray(req.AIAnalysis.RecommendedActions),
		}
		if req.AIAnalysis.UrgencyLevel != nil {
			level := entity.AlertSeverity(*req.AIAnalysis.UrgencyLevel)
			report.AIAnalysis.UrgencyLevel = &level
		}
	}
	report.MarkReviewed(caller.UserID)

	affected, err := u.reportRepo.Update(ctx, report)
	if err != nil {
		u.log.Warnf("Failed to update symptom report %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrReportNotFound
	}

	updated, err := u.reportRepo.FindByID(ctx, id)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload symptom report %s: %+v", id, err)
		updated = report
	}

	resp := converter.ReportToResponse(updated)
	u.auditService.LogUpdate(ctx, &caller.UserID, entity.AuditActionReportReview, "symptom_report", id.String(), oldValue, resp)

	return resp, nil
}

func (u *symptomReportUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	if !caller.IsDoctor() {
		return ErrReportDoctorOnly
	}

	report, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := u.reportRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete symptom report %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	u.auditService.LogDelete(ctx, &caller.UserID, entity.AuditActionReportDelete, "symptom_report", id.String(), converter.ReportToResponse(report))

	return nil
}

func (u *symptomReportUsecase) find(ctx context.Context, id uuid.UUID) (*entity.SymptomReport, error) {
	report, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find symptom report %s: %+v", id, err)
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}
