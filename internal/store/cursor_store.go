package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feral-file/cep-market-client/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving event stream cursors
type CursorStore interface {
	// GetStreamCursor retrieves the last processed event id of a stream, "" when none was saved
	GetStreamCursor(ctx context.Context, stream string) (string, error)
	// SetStreamCursor stores the last processed event id of a stream
	SetStreamCursor(ctx context.Context, stream string, cursor string) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

func streamCursorKey(stream string) string {
	return fmt.Sprintf("stream_cursor:%s", stream)
}

// GetStreamCursor retrieves the last processed event id of a stream
func (s *cursorStore) GetStreamCursor(ctx context.Context, stream string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", streamCursorKey(stream)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // Return "" if no cursor exists
		}
		return "", fmt.Errorf("failed to get stream cursor: %w", err)
	}

	return kv.Value, nil
}

// SetStreamCursor stores the last processed event id of a stream
func (s *cursorStore) SetStreamCursor(ctx context.Context, stream string, cursor string) error {
	kv := schema.KeyValueStore{
		Key:   streamCursorKey(stream),
		Value: cursor,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set stream cursor: %w", err)
	}

	return nil
}
