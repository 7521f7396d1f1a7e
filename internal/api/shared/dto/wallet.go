package dto

import (
	"fmt"

	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// WalletEventRequest is a signer DOM event forwarded by the browser
type WalletEventRequest struct {
	Type   string             `json:"type"`
	Detail domain.WalletState `json:"detail"`
}

// Validate validates the request body
func (r *WalletEventRequest) Validate() error {
	if r.Type == "" {
		return apierrors.NewValidationError("type is required")
	}
	if !domain.WalletEventType(r.Type).IsValid() {
		return apierrors.NewValidationError(fmt.Sprintf("unknown wallet event type: %s", r.Type))
	}
	return nil
}

// ToDomain converts the request to a wallet event
func (r *WalletEventRequest) ToDomain() domain.WalletEvent {
	return domain.WalletEvent{Type: domain.WalletEventType(r.Type), Detail: r.Detail}
}

// WalletStateResponse represents the wallet state after an event
type WalletStateResponse struct {
	IsConnected   bool   `json:"is_connected"`
	IsUnlocked    bool   `json:"is_unlocked"`
	ActiveKey     string `json:"active_key,omitempty"`
	ActiveAccount string `json:"active_account,omitempty"`
}
