package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/cep-market-client/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"encoding", fmt.Errorf("failed to build: %w", domain.ErrEncoding), http.StatusUnprocessableEntity, ErrCodeValidationFailed},
		{"amount", domain.ErrInvalidAmount, http.StatusUnprocessableEntity, ErrCodeValidationFailed},
		{"reference", domain.ErrMissingContractReference, http.StatusUnprocessableEntity, ErrCodeValidationFailed},
		{"wallet unavailable", domain.ErrWalletUnavailable, http.StatusConflict, ErrCodeWalletConflict},
		{"wallet locked", domain.ErrWalletLocked, http.StatusConflict, ErrCodeWalletConflict},
		{"rejected signing", domain.ErrUserRejectedSigning, http.StatusConflict, ErrCodeWalletConflict},
		{"submission", &domain.SubmissionError{Code: -32008, Message: "invalid signature"}, http.StatusBadGateway, ErrCodeNodeRejected},
		{"token not found", fmt.Errorf("owner of 9: %w", domain.ErrTokenNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"api error", NewBadRequestError("bad"), http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := FromError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestFromError_SubmissionCarriesNodeMessage(t *testing.T) {
	_, apiErr := FromError(fmt.Errorf("submit: %w", &domain.SubmissionError{Code: 1, Message: "expired ttl"}))
	assert.Equal(t, "expired ttl", apiErr.Details)
}
