package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles the circulation desk: checkouts, returns and loan reports.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

type overdueParams struct {
	AsOf string `form:"asOf"`
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.placeLoan)
		loans.GET("", h.listLoans)
		loans.GET("/overdue", h.listOverdue)
		loans.GET("/:loanID", h.getLoan)
		loans.GET("/:loanID/preview", h.previewReturn)
		loans.POST("/:loanID/return", h.returnLoan)
		loans.GET("/:loanID/receipt", h.getReceipt)
	}
}

// placeLoan godoc
// @Summary Lend a copy
// @Description Checks the member is active and owes nothing, the copy is available and the member is below the loan limit, then opens the loan.
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.PlaceLoanRequest true "Loan details"
// @Success 201 {object} domain.Loan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Member or copy not found"
// @Failure 409 {object} ErrorResponse "Copy unavailable"
// @Failure 422 {object} ErrorResponse "Member inactive, outstanding fines or loan limit reached"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) placeLoan(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.PlaceLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	loan, err := h.loanService.PlaceLoan(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to place loan")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan placed",
		slog.String("loan_id", loan.LoanID), slog.String("copy_code", loan.CopyCode))
	c.JSON(http.StatusCreated, loan)
}

// returnLoan godoc
// @Summary Return a copy
// @Description Closes the loan, moves the copy to the state matching its condition and assesses late, damage or loss fines.
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param return body dto.ReturnLoanRequest true "Return details"
// @Success 200 {object} domain.ReturnResult
// @Failure 400 {object} ErrorResponse "Unknown condition or invalid amount"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already returned"
// @Security BearerAuth
// @Router /loans/{loanID}/return [post]
func (h *loanHandler) returnLoan(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.loanService.ReturnLoan(c.Request.Context(), c.Param("loanID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to return loan")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan returned",
		slog.String("loan_id", result.Loan.LoanID),
		slog.Int("overdue_days", result.OverdueDays),
		slog.Int("fines", len(result.Fines)))
	c.JSON(http.StatusOK, result)
}

// listLoans godoc
// @Summary List loans
// @Description Lists loans newest first.
// @Tags loans
// @Produce json
// @Param memberID query string false "Member ID"
// @Param copyCode query string false "Copy code"
// @Param status query string false "open or closed"
// @Param overdueOnly query bool false "Only open loans past due"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.loanService.ListLoans(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listOverdue godoc
// @Summary Overdue report
// @Description Lists open loans past their due date with the late fee they would incur today.
// @Tags loans
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ListOverdueResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/overdue [get]
func (h *loanHandler) listOverdue(c *gin.Context) {
	var params overdueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	asOf := time.Now()
	if params.AsOf != "" {
		parsed, err := time.Parse(time.DateOnly, params.AsOf)
		if err != nil {
			respondBindError(c, err)
			return
		}
		asOf = parsed
	}

	loans, err := h.loanService.ListOverdue(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to list overdue loans")
		return
	}
	c.JSON(http.StatusOK, dto.ListOverdueResponse{Loans: loans})
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} domain.Loan
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoan(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to get loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// previewReturn godoc
// @Summary Preview a return
// @Description Shows days elapsed, overdue days and the late fee a return today would charge.
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} domain.ReturnPreview
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already returned"
// @Security BearerAuth
// @Router /loans/{loanID}/preview [get]
func (h *loanHandler) previewReturn(c *gin.Context) {
	preview, err := h.loanService.PreviewReturn(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to preview return")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// getReceipt godoc
// @Summary Loan receipt
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} domain.LoanReceipt
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID}/receipt [get]
func (h *loanHandler) getReceipt(c *gin.Context) {
	receipt, err := h.loanService.LoanReceipt(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to build loan receipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}
