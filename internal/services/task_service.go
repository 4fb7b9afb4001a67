package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskflow/internal/constants"
	"taskflow/internal/models"
	"taskflow/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotCreator       = errors.New("only the creator may modify this task")
	ErrAssigneeNotFound = errors.New("assigned user does not exist")
	ErrInvalidStatus    = errors.New("invalid task status")
)

// StatusFilterAll is the dashboard query value meaning "no status filter".
const StatusFilterAll = "all"

// TaskService handles task business rules: creator-only mutation, the
// no-assignee sentinel, and dashboard list assembly.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TaskInput holds the fields a creator may set on a task. AssignedTo uses the
// form convention: 0 means no assignee.
type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	AssignedTo  uint64
}

func (s *TaskService) resolveAssignee(assignedTo uint64) (*uint64, error) {
	if assignedTo == constants.NoAssigneeSentinel {
		return nil, nil
	}
	if _, err := s.userRepo.FindByID(assignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to check assignee: %w", err)
	}
	id := assignedTo
	return &id, nil
}

// Create inserts a task owned by creatorID.
func (s *TaskService) Create(creatorID uint64, input TaskInput) (*models.Task, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	assigneeID, err := s.resolveAssignee(input.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		CreatorID:    creatorID,
		AssignedToID: assigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get retrieves a task with its creator and assignee loaded.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Creator", "AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update applies input to the task identified by taskID. Only the creator may
// update; the creator reference itself never changes.
func (s *TaskService) Update(taskID, userID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.Get(taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	assigneeID, err := s.resolveAssignee(input.AssignedTo)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.AssignedToID = assigneeID
	task.AssignedTo = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes the task identified by taskID. Only the creator may delete.
func (s *TaskService) Delete(taskID, userID uint64) error {
	task, err := s.Get(taskID)
	if err != nil {
		return err
	}
	if task.CreatorID != userID {
		return ErrNotCreator
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// DashboardLists holds the three task lists shown on the dashboard.
type DashboardLists struct {
	MyTasks       []models.Task
	AssignedTasks []models.Task
	AllTasks      []models.Task
}

// Dashboard assembles the dashboard lists for userID. statusFilter narrows
// the created-by and assigned-to lists; "all" or empty leaves them
// unfiltered. The all-tasks list is never filtered.
func (s *TaskService) Dashboard(userID uint64, statusFilter string) (*DashboardLists, error) {
	var status *models.TaskStatus
	if statusFilter != "" && statusFilter != StatusFilterAll {
		st := models.TaskStatus(statusFilter)
		status = &st
	}

	myTasks, err := s.taskRepo.List(repository.TaskFilter{CreatorID: &userID, Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list created tasks: %w", err)
	}

	assignedTasks, err := s.taskRepo.List(repository.TaskFilter{AssignedToID: &userID, Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	allTasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list all tasks: %w", err)
	}

	return &DashboardLists{
		MyTasks:       myTasks,
		AssignedTasks: assignedTasks,
		AllTasks:      allTasks,
	}, nil
}

// AssigneeChoice is one entry of the assignee dropdown.
type AssigneeChoice struct {
	ID       uint64
	Username string
}

// AssigneeChoices returns the dropdown options: the no-assignee sentinel
// followed by every user.
func (s *TaskService) AssigneeChoices() ([]AssigneeChoice, error) {
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	choices := make([]AssigneeChoice, 0, len(users)+1)
	choices = append(choices, AssigneeChoice{ID: constants.NoAssigneeSentinel, Username: "Nobody"})
	for _, u := range users {
		choices = append(choices, AssigneeChoice{ID: u.ID, Username: u.Username})
	}
	return choices, nil
}
