package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database, named after the test
// so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.GroupMember{}, &models.Todo{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Name:     email,
		Password: "$2a$10$not.a.real.hash.for.tests.only",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return &user
}

// createTestGroup creates a group owned by the given user, the same way
// GroupService.Create does.
func createTestGroup(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Group {
	t.Helper()

	group := models.Group{Name: name, CreatedBy: owner.ID}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to create test group %s: %v", name, err)
	}
	member := models.GroupMember{GroupID: group.ID, UserID: owner.ID, Role: models.RoleOwner}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}
	return &group
}

func addTestMember(t *testing.T, db *gorm.DB, group *models.Group, user *models.User, role string) *models.GroupMember {
	t.Helper()

	member := models.GroupMember{GroupID: group.ID, UserID: user.ID, Role: role}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
	return &member
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with status %d, got %v", want, err)
	}
	if appErr.HTTPStatus != want {
		t.Fatalf("expected status %d, got %d (%s)", want, appErr.HTTPStatus, appErr.Message)
	}
}

func countOwners(t *testing.T, db *gorm.DB, groupID string) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.GroupMember{}).
		Where("group_id = ? AND role = ?", groupID, models.RoleOwner).
		Count(&n).Error; err != nil {
		t.Fatalf("failed to count owners: %v", err)
	}
	return n
}
