package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskflow/internal/flash"
	"taskflow/internal/forms"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/services"
	"taskflow/internal/webpages"
)

// TaskHandler serves the dashboard and the task CRUD pages.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Dashboard lists the current user's created tasks, their assigned tasks and
// all tasks. The status query parameter narrows the first two lists; "all"
// or absent leaves them unfiltered.
func (h *TaskHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	statusFilter := c.Query("status")
	lists, err := h.taskService.Dashboard(userID, statusFilter)
	if err != nil {
		webpages.InternalError(c)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":         "Dashboard",
		"MyTasks":       lists.MyTasks,
		"AssignedTasks": lists.AssignedTasks,
		"AllTasks":      lists.AllTasks,
		"StatusFilter":  statusFilter,
		"Statuses":      models.TaskStatuses,
		"Flashes":       flash.Take(c),
	})
}

// ShowNewTask renders the task creation form.
func (h *TaskHandler) ShowNewTask(c *gin.Context) {
	h.renderTaskForm(c, forms.NewTaskForm(), forms.FieldErrors{}, "New Task", "/task/new")
}

// CreateTask validates the submission and inserts a task owned by the
// current user. The assigned_to sentinel 0 becomes a NULL assignee.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form forms.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderTaskForm(c, form, forms.Translate(err), "New Task", "/task/new")
		return
	}

	_, err := h.taskService.Create(userID, form.Input())
	switch {
	case err == nil:
		flash.Success(c, "Task created successfully!")
		c.Redirect(http.StatusFound, "/dashboard")
	case errors.Is(err, services.ErrAssigneeNotFound):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("assigned_to", "Not a valid choice.")
		h.renderTaskForm(c, form, fieldErrors, "New Task", "/task/new")
	case errors.Is(err, services.ErrInvalidStatus):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("status", "Not a valid choice.")
		h.renderTaskForm(c, form, fieldErrors, "New Task", "/task/new")
	default:
		webpages.InternalError(c)
	}
}

// ShowTask renders the task detail page. Unknown or non-numeric IDs 404.
func (h *TaskHandler) ShowTask(c *gin.Context) {
	task, ok := h.fetchTask(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "task.html", gin.H{
		"Title":   task.Title,
		"Task":    task,
		"Flashes": flash.Take(c),
	})
}

// ShowEditTask renders the edit form prepopulated from the task. Only the
// creator may edit; anyone else is flashed back to the dashboard.
func (h *TaskHandler) ShowEditTask(c *gin.Context) {
	task, ok := h.fetchTask(c)
	if !ok {
		return
	}
	if !h.requireCreator(c, task, "You do not have permission to edit this task.") {
		return
	}

	form := forms.TaskFormFromTask(task)
	h.renderTaskForm(c, form, forms.FieldErrors{}, "Edit Task", fmt.Sprintf("/task/%d/update", task.ID))
}

// UpdateTask validates the submission and applies it to the task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.fetchTask(c)
	if !ok {
		return
	}
	if !h.requireCreator(c, task, "You do not have permission to edit this task.") {
		return
	}

	action := fmt.Sprintf("/task/%d/update", task.ID)

	var form forms.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderTaskForm(c, form, forms.Translate(err), "Edit Task", action)
		return
	}

	_, err := h.taskService.Update(task.ID, userID, form.Input())
	switch {
	case err == nil:
		flash.Success(c, "Task updated successfully!")
		c.Redirect(http.StatusFound, fmt.Sprintf("/task/%d", task.ID))
	case errors.Is(err, services.ErrAssigneeNotFound):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("assigned_to", "Not a valid choice.")
		h.renderTaskForm(c, form, fieldErrors, "Edit Task", action)
	case errors.Is(err, services.ErrInvalidStatus):
		fieldErrors := forms.FieldErrors{}
		fieldErrors.Add("status", "Not a valid choice.")
		h.renderTaskForm(c, form, fieldErrors, "Edit Task", action)
	case errors.Is(err, services.ErrTaskNotFound):
		webpages.NotFound(c)
	default:
		webpages.InternalError(c)
	}
}

// DeleteTask removes the task. Only the creator may delete.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	task, ok := h.fetchTask(c)
	if !ok {
		return
	}
	if !h.requireCreator(c, task, "You do not have permission to delete this task.") {
		return
	}

	if err := h.taskService.Delete(task.ID, userID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			webpages.NotFound(c)
			return
		}
		webpages.InternalError(c)
		return
	}

	flash.Success(c, "Task deleted successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// fetchTask loads the task named in the URL, responding 404 when the ID is
// malformed or unknown. The bool reports whether the request may proceed.
func (h *TaskHandler) fetchTask(c *gin.Context) (*models.Task, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		webpages.NotFound(c)
		return nil, false
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			webpages.NotFound(c)
		} else {
			webpages.InternalError(c)
		}
		return nil, false
	}

	return task, true
}

// requireCreator gates mutation to the task's creator. Non-creators are
// flashed and redirected; the mutation never reaches storage.
func (h *TaskHandler) requireCreator(c *gin.Context, task *models.Task, message string) bool {
	userID, exists := middleware.GetUserID(c)
	if !exists || task.CreatorID != userID {
		flash.Danger(c, message)
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
		return false
	}
	return true
}

func (h *TaskHandler) renderTaskForm(c *gin.Context, form forms.TaskForm, fieldErrors forms.FieldErrors, legend, action string) {
	choices, err := h.taskService.AssigneeChoices()
	if err != nil {
		webpages.InternalError(c)
		return
	}

	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"Title":    legend,
		"Legend":   legend,
		"Action":   action,
		"Form":     form,
		"Errors":   fieldErrors,
		"Choices":  choices,
		"Statuses": models.TaskStatuses,
		"Flashes":  flash.Take(c),
	})
}
