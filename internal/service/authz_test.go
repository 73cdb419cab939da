package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name        string
		callerRole  domain.Role
		callerEmail string
		ownerEmail  string
		want        bool
	}{
		{"admin always allowed", domain.RoleAdmin, "admin@example.com", "owner@example.com", true},
		{"admin allowed on own task", domain.RoleAdmin, "admin@example.com", "admin@example.com", true},
		{"owner allowed", domain.RoleUser, "owner@example.com", "owner@example.com", true},
		{"non-owner denied", domain.RoleUser, "other@example.com", "owner@example.com", false},
		{"email comparison is case sensitive", domain.RoleUser, "Owner@example.com", "owner@example.com", false},
		{"empty caller email denied", domain.RoleUser, "", "owner@example.com", false},
		{"unknown role treated as non-admin", "MODERATOR", "other@example.com", "owner@example.com", false},
		{"unknown role still allowed on own task", "MODERATOR", "owner@example.com", "owner@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.callerRole, tt.callerEmail, tt.ownerEmail))
		})
	}
}

func TestAuthorize(t *testing.T) {
	owner := Identity{UserID: uuid.New(), Email: "owner@example.com", Role: domain.RoleUser}
	stranger := Identity{UserID: uuid.New(), Email: "stranger@example.com", Role: domain.RoleUser}
	admin := Identity{UserID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}

	assert.NoError(t, authorize(owner, "owner@example.com"))
	assert.NoError(t, authorize(admin, "owner@example.com"))
	assert.ErrorIs(t, authorize(stranger, "owner@example.com"), ErrAccessDenied)
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: domain.RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: domain.RoleUser}.IsAdmin())
	assert.False(t, Identity{}.IsAdmin())
}
