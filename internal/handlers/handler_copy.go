package handlers

import (
	"net/http"
	"strings"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/gin-gonic/gin"
)

type copyHandler struct {
	catalogService portssvc.CopySvc
}

// registerCopyRoutes registers routes addressing a copy by its code.
func registerCopyRoutes(rg *gin.RouterGroup, catalogService portssvc.CopySvc) {
	h := &copyHandler{catalogService: catalogService}

	copies := rg.Group("/copies")
	{
		copies.GET("/:code", h.getCopy)
		copies.PUT("/:code/state", h.setCopyState)
		copies.POST("/:code/deactivate", h.deactivateCopy)
		copies.POST("/:code/reactivate", h.reactivateCopy)
	}
}

// getCopy godoc
// @Summary Get a copy by code
// @Tags copies
// @Produce json
// @Param code path string true "Copy code"
// @Success 200 {object} domain.Copy
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /copies/{code} [get]
func (h *copyHandler) getCopy(c *gin.Context) {
	bookCopy, err := h.catalogService.GetCopy(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to get copy")
		return
	}
	c.JSON(http.StatusOK, bookCopy)
}

// setCopyState godoc
// @Summary Change the physical state of a copy
// @Description Moves a copy between available, maintenance and lost. The loaned state is managed by loans.
// @Tags copies
// @Accept json
// @Produce json
// @Param code path string true "Copy code"
// @Param state body dto.SetCopyStateRequest true "New state"
// @Success 200 {object} domain.Copy
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Copy is on loan"
// @Security BearerAuth
// @Router /copies/{code}/state [put]
func (h *copyHandler) setCopyState(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.SetCopyStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	state := domain.CopyState(strings.ToLower(strings.TrimSpace(req.State)))
	bookCopy, err := h.catalogService.SetCopyState(c.Request.Context(), c.Param("code"), state, actor)
	if err != nil {
		respondError(c, err, "Failed to change copy state")
		return
	}
	c.JSON(http.StatusOK, bookCopy)
}

// deactivateCopy godoc
// @Summary Deactivate a copy
// @Tags copies
// @Param code path string true "Copy code"
// @Success 204 "No Content"
// @Failure 409 {object} ErrorResponse "Copy is on loan"
// @Security BearerAuth
// @Router /copies/{code}/deactivate [post]
func (h *copyHandler) deactivateCopy(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeactivateCopy(c.Request.Context(), c.Param("code"), actor); err != nil {
		respondError(c, err, "Failed to deactivate copy")
		return
	}
	c.Status(http.StatusNoContent)
}

// reactivateCopy godoc
// @Summary Reactivate a copy
// @Tags copies
// @Param code path string true "Copy code"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /copies/{code}/reactivate [post]
func (h *copyHandler) reactivateCopy(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.catalogService.ReactivateCopy(c.Request.Context(), c.Param("code"), actor); err != nil {
		respondError(c, err, "Failed to reactivate copy")
		return
	}
	c.Status(http.StatusNoContent)
}
