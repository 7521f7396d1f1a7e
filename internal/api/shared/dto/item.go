package dto

import (
	"encoding/json"
	"time"

	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
	"github.com/feral-file/cep-market-client/internal/store/schema"
)

// CreateItemRequest stores a minted item's catalog document
type CreateItemRequest struct {
	ContractHash string          `json:"contract_hash"`
	TokenID      string          `json:"token_id"`
	DeployHash   string          `json:"deploy_hash"`
	Item         json.RawMessage `json:"item"`
}

// Validate validates the request body
func (r *CreateItemRequest) Validate() error {
	if len(r.Item) == 0 || string(r.Item) == "null" {
		return apierrors.NewValidationError("item is required")
	}
	if !json.Valid(r.Item) {
		return apierrors.NewValidationError("item must be valid JSON")
	}
	return nil
}

// ItemResponse represents one catalog item
type ItemResponse struct {
	ID           string          `json:"id"`
	ContractHash string          `json:"contract_hash,omitempty"`
	TokenID      string          `json:"token_id,omitempty"`
	DeployHash   string          `json:"deploy_hash,omitempty"`
	Item         json.RawMessage `json:"item"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ItemListResponse represents a page of catalog items
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	NextOffset *int           `json:"next_offset,omitempty"`
}

// MapItemToDTO maps an item row to its response
func MapItemToDTO(item schema.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		ContractHash: item.ContractHash,
		TokenID:      item.TokenID,
		DeployHash:   item.DeployHash,
		Item:         json.RawMessage(item.Item),
		CreatedAt:    item.CreatedAt,
	}
}
