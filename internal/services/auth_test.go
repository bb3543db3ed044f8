package services

import (
	"net/http"
	"testing"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/internal/utils"
	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	utils.SetJWTSecret("test-secret-key")
	db := setupTestDB(t)
	return NewAuthService(db, &config.JWTConfig{Secret: "test-secret-key", ExpireHour: 24}), db
}

func TestRegister_CreatesUserWithPersonalGroup(t *testing.T) {
	svc, db := newTestAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, expected normalized lowercase", resp.User.Email)
	}
	var stored models.User
	if err := db.First(&stored, "id = ?", resp.User.ID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !utils.CheckPassword("secret123", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}

	// The token must be valid and carry the user's identity
	claims, err := utils.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user = %q, expected %q", claims.UserID, resp.User.ID)
	}

	// A personal group with an OWNER membership exists
	var group models.Group
	if err := db.First(&group, "created_by = ?", resp.User.ID).Error; err != nil {
		t.Fatalf("personal group not created: %v", err)
	}
	if group.Name != "Alice's tasks" {
		t.Errorf("group name = %q, expected \"Alice's tasks\"", group.Name)
	}

	var member models.GroupMember
	if err := db.First(&member, "group_id = ? AND user_id = ?", group.ID, resp.User.ID).Error; err != nil {
		t.Fatalf("owner membership not created: %v", err)
	}
	if member.Role != models.RoleOwner {
		t.Errorf("role = %q, expected OWNER", member.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	req := &RegisterRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(req)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	// Case variations hit the same account
	_, err = svc.Register(&RegisterRequest{Email: "ALICE@example.com", Password: "other456", Name: "Imposter"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(&RegisterRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(&LoginRequest{Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("Login() returned empty token")
	}

	// Wrong password and unknown email return the same status
	_, err = svc.Login(&LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Register(&RegisterRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.GetUserByID(resp.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	_, err = svc.GetUserByID("does-not-exist")
	assertHTTPStatus(t, err, http.StatusNotFound)
}
