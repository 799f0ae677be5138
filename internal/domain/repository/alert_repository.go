package repository

import (
	"context"
	"time"

	"telehealth-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// FindByID preloads target users and related reports; returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error)
	FindVisible(ctx context.Context, filter *entity.AlertFilter) ([]entity.Alert, int64, error)
	// Update saves content fields; related reports are replaced when replaceRelated is set.
	Update(ctx context.Context, alert *entity.Alert, replaceRelated bool) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// DeleteExpired removes at most limit alerts whose expiresAt is at or before now.
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error)

	MarkRead(ctx context.Context, read *entity.AlertRead) error
	FindReadAlertIDs(ctx context.Context, userID uuid.UUID, alertIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	CountUnread(ctx context.Context, viewer entity.Identity) (int64, error)
}
