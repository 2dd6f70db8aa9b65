package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/domain/schedule"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// TaskService handles calendar task operations
type TaskService struct {
	taskRepo   ports.TaskRepository
	dispatcher ports.Dispatcher
	logger     *logger.Logger
	now        func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, dispatcher ports.Dispatcher, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// ListTasks returns every stored task
func (s *TaskService) ListTasks(ctx context.Context) ([]entities.Task, error) {
	return s.taskRepo.List(ctx)
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("invalid task type: %s", req.Type)
	}
	if !req.Priority.IsValid() {
		return nil, fmt.Errorf("invalid task priority: %s", req.Priority)
	}

	task := &entities.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Priority:    req.Priority,
		Recurrence:  req.Recurrence,
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyTasks, task)
	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// UpdateTask applies partial edits to a task
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Date != nil {
		task.Date = *req.Date
	}
	if req.Time != nil {
		task.Time = *req.Time
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("invalid task type: %s", *req.Type)
		}
		task.Type = *req.Type
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("invalid task priority: %s", *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if req.Recurrence != nil {
		task.Recurrence = req.Recurrence
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.dispatcher.RecordSaved(ports.KeyTasks, task)
	s.logger.Infow("Task updated", "task_id", task.ID)

	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatcher.RecordDeleted(ports.KeyTasks, id)
	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

// DayView is the resolved calendar view for one date.
type DayView struct {
	Date     string              `json:"date"`
	Buckets  schedule.DayBuckets `json:"buckets"`
	Progress int                 `json:"progress"`
}

// GetDayView expands recurring tasks onto the date, buckets the instances by
// time of day and computes the completion percentage.
func (s *TaskService) GetDayView(ctx context.Context, date string) (*DayView, error) {
	day, err := time.ParseInLocation(schedule.DateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	instances := schedule.InstancesOn(tasks, day)
	return &DayView{
		Date:     date,
		Buckets:  schedule.Bucket(instances, day, s.now()),
		Progress: schedule.Progress(instances),
	}, nil
}
