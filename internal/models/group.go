package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultGroupColor is applied when a group is created without a color tag.
const DefaultGroupColor = "#3B82F6"

// Group is a named container scoping a member roster and a set of todos.
// CreatedBy records the creator and never changes after creation.
type Group struct {
	ID          string        `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	Description string        `gorm:"size:1000" json:"description"`
	Color       string        `gorm:"size:20;default:#3B82F6" json:"color"`
	CreatedBy   string        `gorm:"type:char(36);not null" json:"created_by"`
	Creator     *User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members     []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Todos       []Todo        `gorm:"foreignKey:GroupID" json:"todos,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Group) TableName() string { return "groups" }

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Color == "" {
		g.Color = DefaultGroupColor
	}
	return nil
}
