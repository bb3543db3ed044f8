package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/services"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/gorm"
)

// TodoHandler exposes the todo endpoints.
type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(db *gorm.DB) *TodoHandler {
	return &TodoHandler{todoService: services.NewTodoService(db)}
}

// List returns todos in the caller's groups.
// GET /api/todos?group_id=...
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoService.List(middleware.GetUserID(c), c.Query("group_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, todos)
}

// GetByID returns a single todo.
// GET /api/todos/:id
func (h *TodoHandler) GetByID(c *gin.Context) {
	todo, err := h.todoService.Get(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, todo)
}

// Create creates a todo in a group the caller belongs to.
// POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req services.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title is required")
		return
	}

	todo, err := h.todoService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, todo)
}

// Update patches a todo.
// PUT /api/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	var req services.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	todo, err := h.todoService.Update(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, todo)
}

// Delete removes a todo.
// DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.todoService.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "todo deleted successfully"})
}
