package store

import (
	"context"
	"encoding/json"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/store/schema"
)

// CreateItemInput is a catalog item submitted by a client
type CreateItemInput struct {
	ContractHash string
	TokenID      string
	DeployHash   string
	Item         json.RawMessage
}

// ItemFilter narrows ListItems
type ItemFilter struct {
	ContractHash string
	Limit        int
	Offset       int
}

// CreateDeployInput records a submitted deploy
type CreateDeployInput struct {
	DeployHash string
	Operation  string
	Sender     string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CursorStore

	// CreateItem stores an item unless a canonically equal one exists. created is false for a duplicate.
	CreateItem(ctx context.Context, input CreateItemInput) (item *schema.Item, created bool, err error)
	// ListItems returns items newest first
	ListItems(ctx context.Context, filter ItemFilter) ([]schema.Item, error)

	// CreateDeploy records a deploy as submitted; recording the same hash twice is a no-op
	CreateDeploy(ctx context.Context, input CreateDeployInput) error
	// UpdateDeployOutcome stores the observed outcome, creating the row when it is unknown
	UpdateDeployOutcome(ctx context.Context, outcome domain.DeployOutcome) error
	// GetDeploy returns the deploy row, nil when it is unknown
	GetDeploy(ctx context.Context, deployHash string) (*schema.Deploy, error)
}
