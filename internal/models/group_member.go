package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership roles, totally ordered by privilege: OWNER > ADMIN > MEMBER.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// GroupMember binds a user to a group with a role. The composite unique
// index makes concurrent duplicate invites fail at the store rather than
// relying on a read-then-write check.
type GroupMember struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	GroupID   string    `gorm:"type:char(36);uniqueIndex:idx_group_user;not null" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    string    `gorm:"type:char(36);uniqueIndex:idx_group_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:20;default:MEMBER;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GroupMember) TableName() string { return "group_members" }

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether s is one of the three membership roles.
func ValidRole(s string) bool {
	return s == RoleOwner || s == RoleAdmin || s == RoleMember
}
