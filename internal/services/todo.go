package services

import (
	"errors"
	"strings"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
	"gorm.io/gorm"
)

// TodoService implements group-scoped todo access. Visibility and mutation
// rights are uniform within a group: any member may read and write its
// todos, regardless of role.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	GroupID     string `json:"group_id"`
	AssignedTo  string `json:"assigned_to"`
}

type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Completed   *bool   `json:"completed"`
	AssignedTo  *string `json:"assigned_to"`
}

// reconcileStatus derives the (status, completed) pair from an update.
// Status wins when both fields are supplied; a bare completed flag maps to
// COMPLETED or PENDING; with neither supplied the existing status is kept
// and completed re-derived from it.
func reconcileStatus(existing string, patchStatus *string, patchCompleted *bool) (string, bool) {
	switch {
	case patchStatus != nil:
		return *patchStatus, *patchStatus == models.StatusCompleted
	case patchCompleted != nil:
		if *patchCompleted {
			return models.StatusCompleted, true
		}
		return models.StatusPending, false
	default:
		return existing, existing == models.StatusCompleted
	}
}

func (s *TodoService) memberOf(tx *gorm.DB, userID, groupID string) (bool, error) {
	var count int64
	err := tx.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// List returns todos visible to the user: those in groups where they hold
// a membership. An optional groupID narrows the result to one group.
func (s *TodoService) List(userID, groupID string) ([]models.Todo, error) {
	if groupID != "" {
		ok, err := s.memberOf(s.db, userID, groupID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, response.NewNotFound("group not found")
		}
	}

	query := s.db.Model(&models.Todo{}).
		Joins("JOIN group_members ON group_members.group_id = todos.group_id").
		Where("group_members.user_id = ?", userID).
		Preload("Creator").
		Preload("Assignee").
		Order("todos.created_at DESC")

	if groupID != "" {
		query = query.Where("todos.group_id = ?", groupID)
	}

	todos := make([]models.Todo, 0)
	if err := query.Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Get returns one todo if the user is a member of its group; otherwise the
// todo is invisible and reported as not-found.
func (s *TodoService) Get(userID, todoID string) (*models.Todo, error) {
	var todo models.Todo
	if err := s.db.Preload("Creator").Preload("Assignee").First(&todo, "id = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("todo not found")
		}
		return nil, err
	}

	ok, err := s.memberOf(s.db, userID, todo.GroupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewNotFound("todo not found")
	}

	return &todo, nil
}

// Create creates a todo in the given group, or in the user's default group
// (their earliest OWNER group) when no group is specified. The creator must
// be a member of the target group; the assignee defaults to the creator.
func (s *TodoService) Create(userID string, req *CreateTodoRequest) (*models.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.NewBadRequest("title is required")
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		return nil, response.NewBadRequest("invalid priority")
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return nil, response.NewBadRequest("invalid status")
	}

	var todo models.Todo
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		groupID := req.GroupID
		if groupID == "" {
			var owned models.GroupMember
			err := tx.Where("user_id = ? AND role = ?", userID, models.RoleOwner).
				Order("created_at ASC").
				First(&owned).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewBadRequest("no default group, specify group_id")
			}
			if err != nil {
				return err
			}
			groupID = owned.GroupID
		} else {
			ok, err := s.memberOf(tx, userID, groupID)
			if err != nil {
				return err
			}
			if !ok {
				return response.NewNotFound("group not found")
			}
		}

		assignee := req.AssignedTo
		if assignee == "" {
			assignee = userID
		}

		status := req.Status
		if status == "" {
			status = models.StatusPending
		}

		todo = models.Todo{
			Title:       title,
			Description: req.Description,
			Priority:    req.Priority,
			Status:      status,
			Completed:   status == models.StatusCompleted,
			CreatedBy:   userID,
			AssignedTo:  assignee,
			GroupID:     groupID,
		}
		return tx.Create(&todo).Error
	}); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Creator").Preload("Assignee").First(&todo, "id = ?", todo.ID).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update patches a todo. Any member of the owning group may update it.
func (s *TodoService) Update(userID, todoID string, req *UpdateTodoRequest) (*models.Todo, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, response.NewBadRequest("title is required")
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return nil, response.NewBadRequest("invalid priority")
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return nil, response.NewBadRequest("invalid status")
	}

	var todo models.Todo
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&todo, "id = ?", todoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("todo not found")
			}
			return err
		}

		ok, err := s.memberOf(tx, userID, todo.GroupID)
		if err != nil {
			return err
		}
		if !ok {
			return response.NewNotFound("todo not found")
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Priority != nil {
			updates["priority"] = *req.Priority
		}
		if req.AssignedTo != nil {
			updates["assigned_to"] = *req.AssignedTo
		}

		if req.Status != nil || req.Completed != nil {
			status, completed := reconcileStatus(todo.Status, req.Status, req.Completed)
			updates["status"] = status
			updates["completed"] = completed
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&todo).Updates(updates).Error
	}); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Creator").Preload("Assignee").First(&todo, "id = ?", todo.ID).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Delete removes a todo. Any member of the owning group may delete it.
func (s *TodoService) Delete(userID, todoID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.First(&todo, "id = ?", todoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("todo not found")
			}
			return err
		}

		ok, err := s.memberOf(tx, userID, todo.GroupID)
		if err != nil {
			return err
		}
		if !ok {
			return response.NewNotFound("todo not found")
		}

		return tx.Delete(&todo).Error
	})
}
