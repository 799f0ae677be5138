package repository

import (
	"context"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

type SymptomReportRepository interface {
	Create(ctx context.Context, report *entity.SymptomReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SymptomReport, error)
	FindAll(ctx context.Context, filter *entity.ReportFilter) ([]entity.SymptomReport, int64, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.SymptomReport, error)
	Update(ctx context.Context, report *entity.SymptomReport) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
