package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToErrorResponse_InvalidAmountBounds(t *testing.T) {
	minimum := decimal.RequireFromString("0.01")
	maximum := decimal.RequireFromString("100000")

	tests := []struct {
		name      string
		err       error
		wantBound any
		wantMsg   string
	}{
		{"below", &apperrors.InvalidAmountError{Reason: apperrors.BelowMinimum, Bound: &minimum, Input: "0"}, "0.01", "at least 0.01"},
		{"above", &apperrors.InvalidAmountError{Reason: apperrors.AboveMaximum, Bound: &maximum, Input: "200000"}, "100000.00", "maximum is 100000.00"},
		{"empty", &apperrors.InvalidAmountError{Reason: apperrors.AmountEmpty}, nil, "cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := toErrorResponse(fmt.Errorf("returning loan: %w", tt.err))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, CodeInvalidAmount, body.Code)
			assert.Contains(t, body.Error, tt.wantMsg)
			assert.Equal(t, tt.wantBound, body.Details["bound"])
		})
	}
}

func TestToErrorResponse_WrappedSentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: book 1", apperrors.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("%w: isbn taken", apperrors.ErrDuplicate), http.StatusConflict, CodeDuplicateKey},
		{fmt.Errorf("%w: title is blank", apperrors.ErrValidation), http.StatusBadRequest, CodeValidationError},
		{fmt.Errorf("%w: copy on loan", apperrors.ErrConflict), http.StatusConflict, CodeConflict},
		{apperrors.NewStorageError("boom", nil), http.StatusInternalServerError, CodeStorageError},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, body := toErrorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
