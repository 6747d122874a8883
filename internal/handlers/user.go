package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/dto"
	"github.com/yukikurage/scrum-board-api/internal/services"
)

// UserHandler serves the read-only /api/users
type UserHandler struct {
	userService *services.UserService
	listing     Listing
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, listing Listing) *UserHandler {
	return &UserHandler{
		userService: userService,
		listing:     listing,
	}
}

// ListUsers returns a page of users ordered by username
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := h.listing.pagination(c)

	users, total, err := h.userService.ListUsers(c.Query(constants.QuerySearch), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPage(h.listing, c, dto.ToUserDTOs(users, h.listing.links(c)), total, params))
}

// GetUser returns a user by username
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param(constants.UserIdentityField))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, h.listing.links(c)))
}
