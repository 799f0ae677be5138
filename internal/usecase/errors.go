package usecase

import (
	"errors"
	"sort"
	"strings"

	"telehealth-api/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

const maxPageLimit = 100

// ValidationError carries per-field messages and maps to 400.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// newPagination rejects page < 1 and limits outside [1, 100].
func newPagination(page, limit int) (entity.Pagination, error) {
	fields := map[string]string{}
	if page < 1 {
		fields["page"] = "page must be a positive integer"
	}
	if limit < 1 || limit > maxPageLimit {
		fields["limit"] = "limit must be between 1 and 100"
	}
	if len(fields) > 0 {
		return entity.Pagination{}, &ValidationError{Fields: fields}
	}

	return entity.Pagination{Page: page, Limit: limit}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
