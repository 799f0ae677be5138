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
	ErrLabResultNotFound     = errors.New("lab result not found")
	ErrLabResultAccessDenied = errors.New("access denied to this lab result")
	ErrLabResultDoctorOnly   = errors.New("only doctors can manage lab results")
)

type LabResultUsecase interface {
	Create(ctx context.Context, caller entity.Identity, req *dto.CreateLabResultRequest) (*dto.LabResultResponse, error)
	List(ctx context.Context, caller entity.Identity, query *dto.LabResultListQuery) (*dto.LabResultListResponse, error)
	GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.LabResultResponse, error)
	Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error)
	Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error
}

type labResultUsecase struct {
	log           *logrus.Logger
	labResultRepo repository.LabResultRepository
	userRepo      repository.UserRepository
	auditService  service.AuditService
}

func NewLabResultUsecase(
	log *logrus.Logger,
	labResultRepo repository.LabResultRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) LabResultUsecase {
	return &labResultUsecase{
		log:           log,
		labResultRepo: labResultRepo,
		userRepo:      userRepo,
		auditService:  auditService,
	}
}

func (u *labResultUsecase) Create(ctx context.Context, caller entity.Identity, req *dto.CreateLabResultRequest) (*dto.LabResultResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrLabResultDoctorOnly
	}

	patient, err := u.userRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		return nil, newValidationError("patientId", "patientId must reference an existing patient")
	}

	labResult := &entity.LabResult{
		PatientID:   req.PatientID,
		OrderedBy:   &caller.UserID,
		TestName:    req.TestName,
		TestDate:    req.TestDate,
		Results:     req.Results,
		DoctorNotes: req.DoctorNotes,
		FileURL:     req.FileURL,
		NormalRange: req.NormalRange,
		Status:      entity.LabResultStatus(req.Status),
	}
	if req.LabFacility != nil {
		labResult.LabFacility = &entity.LabFacility{
			Name:    req.LabFacility.Name,
			Address: req.LabFacility.Address,
			Contact: req.LabFacility.Contact,
		}
	}

	if err := u.labResultRepo.Create(ctx, labResult); err != nil {
		u.log.Warnf("Failed to create lab result: %+v", err)
		return nil, err
	}

	created, err := u.labResultRepo.FindByID(ctx, labResult.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload lab result %s: %+v", labResult.ID, err)
		created = labResult
	}

	resp := converter.LabResultToResponse(created)
	u.auditService.LogCreate(ctx, &caller.UserID, entity.AuditActionLabResultCreate, "lab_result", labResult.ID.String(), resp)

	return resp, nil
}

// List scopes patients to their own results; doctors may narrow by patientId.
func (u *labResultUsecase) List(ctx context.Context, caller entity.Identity, query *dto.LabResultListQuery) (*dto.LabResultListResponse, error) {
	pagination, err := newPagination(query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	filter := &entity.LabResultFilter{
		Pagination: pagination,
		TestName:   query.TestName,
	}

	switch {
	case caller.IsPatient():
		filter.PatientID = &caller.UserID
	case query.PatientID != "":
		patientID, err := uuid.Parse(query.PatientID)
		if err != nil {
			return nil, newValidationError("patientId", "patientId must be a valid UUID")
		}
		filter.PatientID = &patientID
	}

	if query.Status != "" {
		s := entity.LabResultStatus(query.Status)
		filter.Status = &s
	}

	labResults, total, err := u.labResultRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list lab results: %+v", err)
		return nil, err
	}

	return &dto.LabResultListResponse{
		LabResults: converter.LabResultsToResponses(labResults),
		PageMeta: dto.PageMeta{
			TotalPages:  pagination.TotalPages(total),
			CurrentPage: pagination.Page,
			Total:       total,
		},
	}, nil
}

func (u *labResultUsecase) GetByID(ctx context.Context, caller entity.Identity, id uuid.UUID) (*dto.LabResultResponse, error) {
	labResult, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsPatient() && !labResult.IsOwnedBy(caller.UserID) {
		return nil, ErrLabResultAccessDenied
	}

	return converter.LabResultToResponse(labResult), nil
}

func (u *labResultUsecase) Update(ctx context.Context, caller entity.Identity, id uuid.UUID, req *dto.UpdateLabResultRequest) (*dto.LabResultResponse, error) {
	if !caller.IsDoctor() {
		return nil, ErrLabResultDoctorOnly
	}

	labResult, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	oldValue := converter.LabResultToResponse(labResult)

	if req.Results != nil {
		labResult.Results = *req.Results
	}
	if req.DoctorNotes != nil {
		labResult.DoctorNotes = req.DoctorNotes
	}
	if req.Status != nil {
		labResult.Status = entity.LabResultStatus(*req.Status)
	}
	if req.NormalRange != nil {
		labResult.NormalRange = req.NormalRange
	}

	affected, err := u.labResultRepo.Update(ctx, labResult)
	if err != nil {
		u.log.Warnf("Failed to update lab result %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrLabResultNotFound
	}

	resp := converter.LabResultToResponse(labResult)
	u.auditService.LogUpdate(ctx, &caller.UserID, entity.AuditActionLabResultUpdate, "lab_result", id.String(), oldValue, resp)

	return resp, nil
}

func (u *labResultUsecase) Delete(ctx context.Context, caller entity.Identity, id uuid.UUID) error {
	if !caller.IsDoctor() {
		return ErrLabResultDoctorOnly
	}

	labResult, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := u.labResultRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete lab result %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrLabResultNotFound
	}

	u.auditService.LogDelete(ctx, &caller.UserID, entity.AuditActionLabResultDelete, "lab_result", id.String(), converter.LabResultToResponse(labResult))

	return nil
}

func (u *labResultUsecase) find(ctx context.Context, id uuid.UUID) (*entity.LabResult, error) {
	labResult, err := u.labResultRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab result %s: %+v", id, err)
		return nil, err
	}
	if labResult == nil {
		return nil, ErrLabResultNotFound
	}
	return labResult, nil
}
