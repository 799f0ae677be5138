package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

var errUnknownField = errors.New("unknown field")

// decodeBody decodes a JSON body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// decodeStrict rejects any key the destination struct does not declare.
func decodeStrict(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			return errUnknownField
		}
		return err
	}
	return nil
}

// decodeUpdateBody is decodeStrict for PATCH bodies, writing a 400 on failure.
func decodeUpdateBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeStrict(r, dst); err != nil {
		if errors.Is(err, errUnknownField) {
			response.Error(w, http.StatusBadRequest, "Invalid updates", nil)
			return false
		}
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

func callerIdentity(w http.ResponseWriter, r *http.Request) (entity.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return entity.Identity{}, false
	}
	return identity, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and limit, defaulting absent values. Range checks happen in the usecase.
func pageParams(r *http.Request, fields map[string]string) (page, limit int) {
	return queryInt(r, "page", defaultPage, fields), queryInt(r, "limit", defaultLimit, fields)
}

func queryInt(r *http.Request, key string, def int, fields map[string]string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[key] = key + " must be an integer"
		return def
	}
	return v
}

func queryBool(r *http.Request, key string, def bool, fields map[string]string) bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		fields[key] = key + " must be true or false"
		return def
	}
	return v
}

// writeValidationError writes a 400 when err is a usecase.ValidationError.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		response.ValidationError(w, vErr.Fields)
		return true
	}
	return false
}
