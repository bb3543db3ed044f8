package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/services"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/gorm"
)

// GroupMemberHandler exposes the membership endpoints.
type GroupMemberHandler struct {
	groupService *services.GroupService
}

func NewGroupMemberHandler(db *gorm.DB) *GroupMemberHandler {
	return &GroupMemberHandler{groupService: services.NewGroupService(db)}
}

// Invite adds a user to a group by email.
// POST /api/groups/:id/invite
func (h *GroupMemberHandler) Invite(c *gin.Context) {
	var req services.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	member, err := h.groupService.Invite(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// UpdateRole changes a member's role.
// PUT /api/groups/:id/members/:memberId
func (h *GroupMemberHandler) UpdateRole(c *gin.Context) {
	var req services.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "role is required")
		return
	}

	member, err := h.groupService.UpdateMemberRole(
		middleware.GetUserID(c), c.Param("id"), c.Param("memberId"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}

// Remove deletes a membership from a group.
// DELETE /api/groups/:id/members/:memberId
func (h *GroupMemberHandler) Remove(c *gin.Context) {
	err := h.groupService.RemoveMember(middleware.GetUserID(c), c.Param("id"), c.Param("memberId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed successfully"})
}
