package services

import (
	"errors"
	"strings"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/gorm"
)

// GroupService implements the group lifecycle and membership rules. Every
// check-then-mutate sequence runs inside a transaction so that two
// concurrent requests cannot both pass a role check and leave the group in
// an inconsistent state.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GroupView is a group annotated with the caller's own role.
type GroupView struct {
	models.Group
	MyRole string `json:"my_role"`
}

// membership returns the caller's membership in a group, or nil if none.
func (s *GroupService) membership(tx *gorm.DB, userID, groupID string) (*models.GroupMember, error) {
	var m models.GroupMember
	err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// requireRole loads the caller's membership and checks it against the
// allowed roles. A missing membership is reported as not-found so group
// existence is never leaked to non-members; an insufficient role as
// forbidden.
func (s *GroupService) requireRole(tx *gorm.DB, userID, groupID, denyMsg string, roles ...string) (*models.GroupMember, error) {
	m, err := s.membership(tx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, response.NewNotFound("group not found")
	}
	for _, r := range roles {
		if m.Role == r {
			return m, nil
		}
	}
	return nil, response.NewForbidden(denyMsg)
}

// List returns all groups the user belongs to, newest first, each with the
// creator, the member roster and a todo digest.
func (s *GroupService) List(userID string) ([]GroupView, error) {
	var memberships []models.GroupMember
	if err := s.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	roleByGroup := make(map[string]string, len(memberships))
	groupIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		roleByGroup[m.GroupID] = m.Role
		groupIDs = append(groupIDs, m.GroupID)
	}

	views := make([]GroupView, 0, len(groupIDs))
	if len(groupIDs) == 0 {
		return views, nil
	}

	var groups []models.Group
	if err := s.db.Where("id IN ?", groupIDs).
		Preload("Creator").
		Preload("Members.User").
		Preload("Todos").
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}

	for _, g := range groups {
		views = append(views, GroupView{Group: g, MyRole: roleByGroup[g.ID]})
	}
	return views, nil
}

// Get returns one group. The membership check runs before the existence
// check: non-members and nonexistent groups both surface as not-found.
func (s *GroupService) Get(userID, groupID string) (*GroupView, error) {
	m, err := s.membership(s.db, userID, groupID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, response.NewNotFound("group not found")
	}

	var group models.Group
	if err := s.db.Preload("Creator").
		Preload("Members.User").
		Preload("Todos.Creator").
		Preload("Todos.Assignee").
		First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("group not found")
		}
		return nil, err
	}

	return &GroupView{Group: group, MyRole: m.Role}, nil
}

// Create creates a group and its OWNER membership atomically; if the
// membership insert fails the group does not persist.
func (s *GroupService) Create(userID string, req *CreateGroupRequest) (*GroupView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewBadRequest("group name is required")
	}

	group := models.Group{
		Name:        name,
		Description: req.Description,
		Color:       req.Color,
		CreatedBy:   userID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID: group.ID,
			UserID:  userID,
			Role:    models.RoleOwner,
		}
		return tx.Create(&member).Error
	}); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Creator").Preload("Members.User").First(&group, "id = ?", group.ID).Error; err != nil {
		return nil, err
	}
	return &GroupView{Group: group, MyRole: models.RoleOwner}, nil
}

// Update modifies name, description or color. Requires OWNER or ADMIN.
// Partial update semantics: absent fields are untouched; an explicit null
// description clears it.
func (s *GroupService) Update(userID, groupID string, req *UpdateGroupRequest) (*GroupView, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, response.NewBadRequest("group name is required")
	}

	var role string
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.requireRole(tx, userID, groupID, "access denied", models.RoleOwner, models.RoleAdmin)
		if err != nil {
			return err
		}
		role = m.Role

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Color != nil && *req.Color != "" {
			updates["color"] = *req.Color
		}
		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&models.Group{}).Where("id = ?", groupID).Updates(updates).Error
	}); err != nil {
		return nil, err
	}

	var group models.Group
	if err := s.db.Preload("Creator").Preload("Members.User").First(&group, "id = ?", groupID).Error; err != nil {
		return nil, err
	}
	return &GroupView{Group: group, MyRole: role}, nil
}

// Delete destroys a group. OWNER only. The cascade (todos, then members,
// then the group) is one transaction so no partial state is ever visible.
func (s *GroupService) Delete(userID, groupID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.requireRole(tx, userID, groupID, "only group owner can delete the group", models.RoleOwner); err != nil {
			return err
		}

		if err := tx.Where("group_id = ?", groupID).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", groupID).Error
	})
}

// Invite adds a user (looked up by email) to the group. Requires OWNER or
// ADMIN. The OWNER role is never grantable: ownership stays with the
// creator, which keeps the one-owner-per-group invariant by construction.
func (s *GroupService) Invite(userID, groupID string, req *InviteMemberRequest) (*models.GroupMember, error) {
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		return nil, response.NewBadRequest("invalid role, must be 'ADMIN' or 'MEMBER'")
	}
	if role == models.RoleOwner {
		return nil, response.NewBadRequest("cannot grant OWNER role")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var member models.GroupMember
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.requireRole(tx, userID, groupID, "access denied", models.RoleOwner, models.RoleAdmin); err != nil {
			return err
		}

		var invited models.User
		if err := tx.Where("email = ?", email).First(&invited).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("user not found")
			}
			return err
		}

		existing, err := s.membership(tx, invited.ID, groupID)
		if err != nil {
			return err
		}
		if existing != nil {
			return response.NewBadRequest("user is already a member")
		}

		member = models.GroupMember{
			GroupID: groupID,
			UserID:  invited.ID,
			Role:    role,
		}
		if err := tx.Create(&member).Error; err != nil {
			// Concurrent invite for the same (user, group) pair: the
			// unique index rejected it.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.NewBadRequest("user is already a member")
			}
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&member, "id = ?", member.ID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember deletes a membership. Requires OWNER or ADMIN. An OWNER
// membership can never be removed, which covers both owner self-removal
// and an admin trying to evict the owner.
func (s *GroupService) RemoveMember(userID, groupID, memberID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.requireRole(tx, userID, groupID, "access denied", models.RoleOwner, models.RoleAdmin); err != nil {
			return err
		}

		var target models.GroupMember
		if err := tx.Where("id = ? AND group_id = ?", memberID, groupID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("member not found")
			}
			return err
		}

		if target.Role == models.RoleOwner {
			return response.NewBadRequest("cannot remove group owner")
		}

		return tx.Delete(&target).Error
	})
}

// UpdateMemberRole changes a member's role. OWNER only, strictly more
// restrictive than invite/remove. The OWNER role can be neither granted
// nor revoked here.
func (s *GroupService) UpdateMemberRole(userID, groupID, memberID string, req *UpdateMemberRoleRequest) (*models.GroupMember, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest("invalid role")
	}
	if req.Role == models.RoleOwner {
		return nil, response.NewBadRequest("cannot grant OWNER role")
	}

	var target models.GroupMember
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.membership(tx, userID, groupID)
		if err != nil {
			return err
		}
		if m == nil {
			return response.NewNotFound("group not found")
		}
		if m.Role != models.RoleOwner {
			return response.NewForbidden("only group owner can change roles")
		}

		if err := tx.Where("id = ? AND group_id = ?", memberID, groupID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("member not found")
			}
			return err
		}

		if target.Role == models.RoleOwner {
			return response.NewBadRequest("cannot change role of group owner")
		}

		target.Role = req.Role
		return tx.Save(&target).Error
	}); err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&target, "id = ?", target.ID).Error; err != nil {
		return nil, err
	}
	return &target, nil
}
