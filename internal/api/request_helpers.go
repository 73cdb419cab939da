package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// getIdentity extracts the authenticated caller from the request context and
// writes a 401 if it is missing. Returns false when a response was written.
func getIdentity(w http.ResponseWriter, r *http.Request) (service.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok || identity.UserID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return service.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}
	return id, nil
}

// getIdentityAndPathUUID combines the two common extractions; an error
// response has already been written when ok is false.
func getIdentityAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (service.Identity, uuid.UUID, bool) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return service.Identity{}, uuid.Nil, false
	}

	id, err := getPathUUID(r, paramName)
	if err != nil {
		HandleServiceError(w, r, err)
		return service.Identity{}, uuid.Nil, false
	}

	return identity, id, true
}
