package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/dto"
	"github.com/yukikurage/scrum-board-api/internal/middleware"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

// SprintHandler serves /api/sprints
type SprintHandler struct {
	sprintService *services.SprintService
	listing       Listing
}

// NewSprintHandler creates a new SprintHandler
func NewSprintHandler(sprintService *services.SprintService, listing Listing) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		listing:       listing,
	}
}

// ListSprints returns a page of sprints filtered by end_min, end_max and search
func (h *SprintHandler) ListSprints(c *gin.Context) {
	params := h.listing.pagination(c)

	sprints, total, err := h.sprintService.ListSprints(services.ListSprintsInput{
		Query:      c.Request.URL.Query(),
		Pagination: params,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPage(h.listing, c, dto.ToSprintDTOs(sprints, h.listing.links(c)), total, params))
}

// GetSprint returns a sprint by ID
func (h *SprintHandler) GetSprint(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	sprint, err := h.sprintService.GetSprint(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintDTO(*sprint, h.listing.links(c)))
}

// CreateSprint creates a new sprint
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	input, err := parseSprintInput(body)
	if err != nil {
		respondError(c, err)
		return
	}

	sprint, err := h.sprintService.CreateSprint(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSprintDTO(*sprint, h.listing.links(c)))
}

// ReplaceSprint handles PUT with a full representation
func (h *SprintHandler) ReplaceSprint(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	input, err := parseSprintInput(body)
	if err != nil {
		respondError(c, err)
		return
	}

	sprint, err := h.sprintService.ReplaceSprint(id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintDTO(*sprint, h.listing.links(c)))
}

// UpdateSprint handles PATCH with the fields to change
func (h *SprintHandler) UpdateSprint(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	body, err := readPayload(c)
	if err != nil {
		invalidBody(c, err)
		return
	}

	patch, err := parseSprintPatch(body)
	if err != nil {
		respondError(c, err)
		return
	}

	sprint, err := h.sprintService.UpdateSprint(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintDTO(*sprint, h.listing.links(c)))
}

// DeleteSprint deletes a sprint and its tasks
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	if err := h.sprintService.DeleteSprint(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
