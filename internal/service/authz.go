package service

import (
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Identity is the verified caller identity supplied by the authentication
// layer: who is making the request and what role they hold.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (id Identity) IsAdmin() bool {
	return id.Role == domain.RoleAdmin
}

// Allowed is the single ownership decision used before every per-record
// operation: admins may touch anything, everyone else only records whose
// owner email matches theirs exactly (case-sensitive).
func Allowed(callerRole domain.Role, callerEmail, ownerEmail string) bool {
	return callerRole == domain.RoleAdmin || callerEmail == ownerEmail
}

// authorize returns ErrAccessDenied unless Allowed reports the caller may
// operate on a record owned by ownerEmail. Keeping the check in one place
// prevents the per-operation guards from drifting apart.
func authorize(caller Identity, ownerEmail string) error {
	if !Allowed(caller.Role, caller.Email, ownerEmail) {
		return ErrAccessDenied
	}
	return nil
}
