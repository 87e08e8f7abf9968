package services

import (
	"context"
	"strings"
	"time"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
)

// TaskInput creates a task
type TaskInput struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	BranchID    string              `json:"branchId" validate:"required"`
	Priority    models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
}

// UpdateTaskInput edits a task; nil fields are left alone
type UpdateTaskInput struct {
	Title       *string              `json:"title" validate:"omitempty,min=1"`
	Description *string              `json:"description"`
	Priority    *models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
}

// TaskQuery filters the tasks of a branch
type TaskQuery struct {
	Status   models.TaskStatus   `form:"status"`
	Priority models.TaskPriority `form:"priority"`
	PageQuery
}

// TaskPage is one page of tasks
type TaskPage struct {
	Tasks      []models.Task `json:"tasks"`
	Pagination Pagination    `json:"pagination"`
}

// TaskService manages branch tasks
type TaskService struct {
	deps *Dependencies
}

// NewTaskService creates a new task service
func NewTaskService(deps *Dependencies) *TaskService {
	return &TaskService{deps: deps}
}

func checkTaskDates(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return badRequest(i18n.TaskInvalidDates)
	}
	if end != nil && end.Before(start) {
		return badRequest(i18n.TaskInvalidDates)
	}
	return nil
}

// Create adds a pending task to an existing branch
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*models.Task, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if err := checkTaskDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if _, err := s.deps.Store.Branches.FindByID(ctx, input.BranchID); err != nil {
		return nil, fromRepo(err, i18n.BranchNotFound)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		BranchID:    input.BranchID,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := s.deps.Store.Tasks.Create(ctx, task); err != nil {
		return nil, fromRepo(err, i18n.TaskNotFound)
	}
	return task, nil
}

// FindForBranch returns one page of a branch's tasks
func (s *TaskService) FindForBranch(ctx context.Context, branchID string, query TaskQuery) (*TaskPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}
	tasks, total, err := s.deps.Store.Tasks.List(ctx, repositories.TaskFilter{
		BranchID: branchID,
		Status:   query.Status,
		Priority: query.Priority,
		Page:     repositories.Page{Limit: limit, Offset: query.Offset},
	})
	if err != nil {
		return nil, fromRepo(err, i18n.TaskNotFound)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &TaskPage{Tasks: tasks, Pagination: paginate(total, limit, query.Offset)}, nil
}

// FindOne returns a task by id
func (s *TaskService) FindOne(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.deps.Store.Tasks.FindByID(ctx, id)
	return task, fromRepo(err, i18n.TaskNotFound)
}

// Update edits a task, re-checking its dates
func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	task, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = input.EndDate
	}
	if err := checkTaskDates(task.StartDate, task.EndDate); err != nil {
		return nil, err
	}
	if err := s.deps.Store.Tasks.Save(ctx, task); err != nil {
		return nil, fromRepo(err, i18n.TaskNotFound)
	}
	return task, nil
}

// UpdateStatus moves a task, stamping the completion date when it completes
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted, models.TaskStatusCancelled:
	default:
		return nil, badRequest(i18n.ErrValidation)
	}
	task, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	if status == models.TaskStatusCompleted {
		now := s.deps.now()
		task.CompletionDate = &now
	} else {
		task.CompletionDate = nil
	}
	if err := s.deps.Store.Tasks.Save(ctx, task); err != nil {
		return nil, fromRepo(err, i18n.TaskNotFound)
	}
	return task, nil
}

// Remove soft deletes a task
func (s *TaskService) Remove(ctx context.Context, id string) error {
	return fromRepo(s.deps.Store.Tasks.Delete(ctx, id), i18n.TaskNotFound)
}
