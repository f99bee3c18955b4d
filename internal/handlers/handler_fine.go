package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fineHandler handles HTTP requests related to fines.
type fineHandler struct {
	fineService portssvc.FineSvcFacade
}

func newFineHandler(fs portssvc.FineSvcFacade) *fineHandler {
	return &fineHandler{fineService: fs}
}

type lateFeeParams struct {
	Days int `form:"days" binding:"min=0"`
}

// registerFineRoutes registers routes related to fines.
func registerFineRoutes(rg *gin.RouterGroup, fineService portssvc.FineSvcFacade) {
	h := newFineHandler(fineService)

	fines := rg.Group("/fines")
	{
		fines.POST("", h.issueFine)
		fines.GET("", h.listFines)
		fines.GET("/late-fee", h.computeLateFee)
		fines.GET("/:fineID", h.getFine)
		fines.POST("/:fineID/pay", h.markPaid)
		fines.GET("/:fineID/receipt", h.getReceipt)
	}
}

// issueFine godoc
// @Summary Issue a fine
// @Description Records a fine entered by a librarian outside the return flow.
// @Tags fines
// @Accept json
// @Produce json
// @Param fine body dto.IssueFineRequest true "Fine details"
// @Success 201 {object} domain.Fine
// @Failure 400 {object} ErrorResponse "Invalid amount or loan of another member"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /fines [post]
func (h *fineHandler) issueFine(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.IssueFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fine, err := h.fineService.IssueFine(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to issue fine")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fine issued",
		slog.String("fine_id", fine.FineID), slog.String("amount", fine.Amount.StringFixed(2)))
	c.JSON(http.StatusCreated, fine)
}

// listFines godoc
// @Summary List fines
// @Description Lists fines newest first.
// @Tags fines
// @Produce json
// @Param memberID query string false "Member ID"
// @Param loanID query string false "Loan ID"
// @Param reason query string false "late_return, damage, loss or other"
// @Param unpaidOnly query bool false "Only unpaid fines"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListFinesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines [get]
func (h *fineHandler) listFines(c *gin.Context) {
	var params dto.ListFinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.fineService.ListFines(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list fines")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// computeLateFee godoc
// @Summary Compute a late fee
// @Tags fines
// @Produce json
// @Param days query int true "Overdue days"
// @Success 200 {object} dto.LateFeeResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines/late-fee [get]
func (h *fineHandler) computeLateFee(c *gin.Context) {
	var params lateFeeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LateFeeResponse{
		OverdueDays: params.Days,
		Amount:      h.fineService.ComputeLateFee(params.Days),
	})
}

// getFine godoc
// @Summary Get a fine by ID
// @Tags fines
// @Produce json
// @Param fineID path string true "Fine ID"
// @Success 200 {object} domain.Fine
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines/{fineID} [get]
func (h *fineHandler) getFine(c *gin.Context) {
	fine, err := h.fineService.GetFine(c.Request.Context(), c.Param("fineID"))
	if err != nil {
		respondError(c, err, "Failed to get fine")
		return
	}
	c.JSON(http.StatusOK, fine)
}

// markPaid godoc
// @Summary Pay a fine
// @Tags fines
// @Produce json
// @Param fineID path string true "Fine ID"
// @Success 200 {object} domain.Fine
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already paid"
// @Security BearerAuth
// @Router /fines/{fineID}/pay [post]
func (h *fineHandler) markPaid(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	fine, err := h.fineService.MarkPaid(c.Request.Context(), c.Param("fineID"), actor)
	if err != nil {
		respondError(c, err, "Failed to mark fine paid")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fine paid", slog.String("fine_id", fine.FineID))
	c.JSON(http.StatusOK, fine)
}

// getReceipt godoc
// @Summary Fine receipt
// @Tags fines
// @Produce json
// @Param fineID path string true "Fine ID"
// @Success 200 {object} domain.FineReceipt
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /fines/{fineID}/receipt [get]
func (h *fineHandler) getReceipt(c *gin.Context) {
	receipt, err := h.fineService.FineReceipt(c.Request.Context(), c.Param("fineID"))
	if err != nil {
		respondError(c, err, "Failed to build fine receipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}
