package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Todo statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Todo is a unit of work scoped to exactly one group. Completed is a legacy
// flag kept in lockstep with Status: true iff Status is COMPLETED.
type Todo struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Status      string    `gorm:"size:20;default:PENDING;not null" json:"status"`
	Priority    string    `gorm:"size:20;default:MEDIUM;not null" json:"priority"`
	CreatedBy   string    `gorm:"type:char(36);not null" json:"created_by"`
	Creator     *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	AssignedTo  string    `gorm:"type:char(36)" json:"assigned_to"`
	Assignee    *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	GroupID     string    `gorm:"type:char(36);index;not null" json:"group_id"`
	Group       *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Todo) TableName() string { return "todos" }

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}

// ValidPriority reports whether s is a recognized priority value.
func ValidPriority(s string) bool {
	return s == PriorityLow || s == PriorityMedium || s == PriorityHigh
}

// ValidStatus reports whether s is a recognized status value.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}
