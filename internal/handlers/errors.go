package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/ginagrosso/biblioteca/internal/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request. Details carries the
// values a client needs to render the failure (amounts, limits, states).
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Error kinds reported in ErrorResponse.Code.
const (
	CodeDuplicateKey      = "DuplicateKey"
	CodeNotFound          = "NotFound"
	CodeValidationError   = "ValidationError"
	CodeMemberInactive    = "MemberInactive"
	CodeOutstandingFines  = "OutstandingFines"
	CodeCopyUnavailable   = "CopyUnavailable"
	CodeLoanLimitExceeded = "LoanLimitExceeded"
	CodeAlreadyReturned   = "AlreadyReturned"
	CodeAlreadyPaid       = "AlreadyPaid"
	CodeInvalidAmount     = "InvalidAmount"
	CodeConflict          = "Conflict"
	CodeUnauthorized      = "Unauthorized"
	CodeStorageError      = "StorageError"
)

// toErrorResponse maps a service error to its status and body.
func toErrorResponse(err error) (int, ErrorResponse) {
	var (
		amountErr      *apperrors.InvalidAmountError
		outstandingErr *apperrors.OutstandingFinesError
		unavailableErr *apperrors.CopyUnavailableError
		limitErr       *apperrors.LoanLimitError
	)

	switch {
	case errors.As(err, &amountErr):
		details := map[string]any{"reason": string(amountErr.Reason)}
		if amountErr.Bound != nil {
			details["bound"] = amountErr.Bound.StringFixed(2)
		}
		return http.StatusBadRequest, ErrorResponse{Error: amountErr.Error(), Code: CodeInvalidAmount, Details: details}
	case errors.As(err, &outstandingErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "The member has unpaid fines totalling " + utils.FormatAmount(outstandingErr.Amount) + " and cannot borrow until they are settled",
			Code:    CodeOutstandingFines,
			Details: map[string]any{"amount": outstandingErr.Amount.StringFixed(2)},
		}
	case errors.As(err, &unavailableErr):
		return http.StatusConflict, ErrorResponse{
			Error:   "Copy " + unavailableErr.Code + " cannot be lent because it is " + unavailableErr.State,
			Code:    CodeCopyUnavailable,
			Details: map[string]any{"state": unavailableErr.State},
		}
	case errors.As(err, &limitErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "The member already holds the maximum number of loans",
			Code:    CodeLoanLimitExceeded,
			Details: map[string]any{"limit": limitErr.Limit},
		}
	case errors.Is(err, apperrors.ErrMemberInactive):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "The member is not active", Code: CodeMemberInactive}
	case errors.Is(err, apperrors.ErrAlreadyReturned):
		return http.StatusConflict, ErrorResponse{Error: "This loan has already been returned", Code: CodeAlreadyReturned}
	case errors.Is(err, apperrors.ErrAlreadyPaid):
		return http.StatusConflict, ErrorResponse{Error: "This fine has already been paid", Code: CodeAlreadyPaid}
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeDuplicateKey}
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeConflict}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound}
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeValidationError}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password", Code: CodeUnauthorized}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: CodeStorageError}
	}
}

// respondError logs err at a level matching its status and writes the error body.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, body := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.String("code", body.Code))
	}
	c.JSON(status, body)
}

// respondBindError reports a request that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: CodeValidationError})
}

// actorID returns the authenticated librarian, aborting with 401 when missing.
func actorID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Librarian ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: CodeUnauthorized})
	}
	return id, ok
}
