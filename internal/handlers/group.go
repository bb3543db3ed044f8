package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/services"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/gorm"
)

// GroupHandler exposes the group lifecycle endpoints.
type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(db *gorm.DB) *GroupHandler {
	return &GroupHandler{groupService: services.NewGroupService(db)}
}

// List returns all groups the caller belongs to.
// GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groupService.List(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, groups)
}

// GetByID returns a single group the caller is a member of.
// GET /api/groups/:id
func (h *GroupHandler) GetByID(c *gin.Context) {
	group, err := h.groupService.Get(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, group)
}

// Create creates a new group owned by the caller.
// POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "group name is required")
		return
	}

	group, err := h.groupService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, group)
}

// Update modifies a group's name, description or color.
// PUT /api/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	var req services.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Update(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, group)
}

// Delete destroys a group and everything in it.
// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.groupService.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "group deleted successfully"})
}
