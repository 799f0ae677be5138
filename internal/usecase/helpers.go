package usecase

import (
	"time"

	"telehealth-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// parseDate parses an optional YYYY-MM-DD value as a UTC calendar date.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(validator.DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// stringArray never returns nil, so text[] NOT NULL columns get '{}' instead of NULL.
func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return values
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
