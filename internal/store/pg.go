package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/store/schema"
)

const (
	defaultItemsLimit = 50
	maxItemsLimit     = 500
)

type pgStore struct {
	CursorStore
	db    *gorm.DB
	jcs   adapter.JCS
	clock adapter.Clock
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, jcs adapter.JCS, clock adapter.Clock) Store {
	return &pgStore{
		CursorStore: NewCursorStore(db),
		db:          db,
		jcs:         jcs,
		clock:       clock,
	}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ContentHash returns sha256 of the RFC 8785 canonical form of a JSON document
func ContentHash(j adapter.JCS, doc []byte) ([]byte, error) {
	canonical, err := j.Transform(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize item: %w", err)
	}
	hash := sha256.Sum256(canonical)
	return hash[:], nil
}

// CreateItem stores an item unless a canonically equal one exists
func (s *pgStore) CreateItem(ctx context.Context, input CreateItemInput) (*schema.Item, bool, error) {
	hash, err := ContentHash(s.jcs, input.Item)
	if err != nil {
		return nil, false, err
	}

	item := schema.Item{
		ID:           uuid.NewString(),
		ContractHash: domain.NormalizeHash(input.ContractHash),
		TokenID:      input.TokenID,
		DeployHash:   input.DeployHash,
		Item:         datatypes.JSON(input.Item),
		ContentHash:  hash,
		CreatedAt:    s.clock.Now().UTC(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_hash"}},
			DoNothing: true,
		}).
		Create(&item)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create item: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &item, true, nil
	}

	var existing schema.Item
	if err := s.db.WithContext(ctx).Where("content_hash = ?", hash).First(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("failed to get existing item: %w", err)
	}
	logger.DebugCtx(ctx, "Duplicate item", zap.String("id", existing.ID))
	return &existing, false, nil
}

// ListItems returns items newest first
func (s *pgStore) ListItems(ctx context.Context, filter ItemFilter) ([]schema.Item, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultItemsLimit
	}
	limit = min(limit, maxItemsLimit)

	query := s.db.WithContext(ctx).Model(&schema.Item{})
	if filter.ContractHash != "" {
		query = query.Where("contract_hash = ?", domain.NormalizeHash(filter.ContractHash))
	}

	var items []schema.Item
	err := query.
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Offset(max(filter.Offset, 0)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// CreateDeploy records a deploy as submitted
func (s *pgStore) CreateDeploy(ctx context.Context, input CreateDeployInput) error {
	now := s.clock.Now().UTC()
	deploy := schema.Deploy{
		DeployHash:  input.DeployHash,
		Operation:   input.Operation,
		Sender:      input.Sender,
		State:       domain.DeployStateSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "deploy_hash"}},
			DoNothing: true,
		}).
		Create(&deploy).Error
	if err != nil {
		return fmt.Errorf("failed to create deploy: %w", err)
	}
	return nil
}

// UpdateDeployOutcome stores the observed outcome, creating the row when it is unknown
func (s *pgStore) UpdateDeployOutcome(ctx context.Context, outcome domain.DeployOutcome) error {
	now := s.clock.Now().UTC()
	deploy := schema.Deploy{
		DeployHash:   outcome.DeployHash,
		State:        outcome.State,
		BlockHash:    outcome.BlockHash,
		Cost:         outcome.Cost,
		ErrorMessage: outcome.ErrorMessage,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}
	if outcome.State.IsTerminal() {
		deploy.FinalizedAt = &now
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "deploy_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"state", "block_hash", "cost", "error_message", "finalized_at", "updated_at",
			}),
		}).
		Create(&deploy).Error
	if err != nil {
		return fmt.Errorf("failed to update deploy outcome: %w", err)
	}
	return nil
}

// GetDeploy returns the deploy row, nil when it is unknown
func (s *pgStore) GetDeploy(ctx context.Context, deployHash string) (*schema.Deploy, error) {
	var deploy schema.Deploy
	err := s.db.WithContext(ctx).Where("deploy_hash = ?", deployHash).First(&deploy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get deploy: %w", err)
	}
	return &deploy, nil
}
