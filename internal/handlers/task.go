package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/dto"
	apierrors "github.com/yukikurage/scrum-board-api/internal/errors"
	"github.com/yukikurage/scrum-board-api/internal/middleware"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

// TaskHandler serves /api/tasks
type TaskHandler struct {
	taskService *services.TaskService
	listing     Listing
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, listing Listing) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		listing:     listing,
	}
}

// ListTasks returns a page of tasks
// Supports sprint, status, assigned, backlog, search and ordering
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := h.listing.pagination(c)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		Query:      c.Request.URL.Query(),
		Pagination: params,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPage(h.listing, c, dto.ToTaskDTOs(tasks, h.listing.links(c)), total, params))
}

// GetTask returns a task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, h.listing.links(c)))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	input, err := parseTaskInput(body)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, h.listing.links(c)))
}

// ReplaceTask handles PUT with a full representation
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	input, err := parseTaskInput(body)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.ReplaceTask(id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, h.listing.links(c)))
}

// UpdateTask handles PATCH with the fields to change
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	patch, err := parseTaskPatch(body)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, h.listing.links(c)))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	if err := h.taskService.DeleteTask(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTasks suggests backlog tasks from free text without storing them
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{Text: req.Text})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToSuggestedTaskDTOs(tasks),
	})
}
