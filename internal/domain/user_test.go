package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	validPassword := "password123"

	user, err := NewUser(validEmail, validPassword, RoleUser)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Role != RoleUser {
		t.Errorf("Expected role %s, got %s", RoleUser, user.Role)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Empty role defaults to USER
	user, err = NewUser(validEmail, validPassword, "")
	if err != nil {
		t.Fatalf("Expected no error for empty role, got %v", err)
	}
	if user.Role != RoleUser {
		t.Errorf("Expected default role %s, got %s", RoleUser, user.Role)
	}

	// Invalid email
	_, err = NewUser("", validPassword, RoleUser)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("invalidemail", validPassword, RoleUser)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Invalid role
	_, err = NewUser(validEmail, validPassword, "SUPERUSER")
	if err != ErrInvalidRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidRole, err)
	}

	// Password bounds
	_, err = NewUser(validEmail, "short", RoleUser)
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewUser(validEmail, string(long), RoleUser)
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	// Users loaded from the database carry only the hash.
	user := User{
		ID:             uuid.New(),
		Email:          "stored@example.com",
		HashedPassword: "$2a$10$somethinghashed",
		Role:           RoleAdmin,
	}

	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error for stored user, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestIsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("Expected admin user to be admin")
	}

	regular := User{Role: RoleUser}
	if regular.IsAdmin() {
		t.Error("Expected regular user not to be admin")
	}
}
