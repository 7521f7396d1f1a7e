//go:build integration

package store

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestItem creates a test item input
func buildTestItem(contract, tokenID string, doc map[string]interface{}) CreateItemInput {
	raw, _ := json.Marshal(doc)
	return CreateItemInput{
		ContractHash: contract,
		TokenID:      tokenID,
		Item:         raw,
	}
}

var testContract = "hash-" + strings.Repeat("ab", 32)

// =============================================================================
// Test: Items
// =============================================================================

func testCreateItem(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("new item is created", func(t *testing.T) {
		item, created, err := store.CreateItem(ctx, buildTestItem(testContract, "1", map[string]interface{}{
			"name":  "First",
			"image": "ipfs://first",
		}))
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, strings.Repeat("ab", 32), item.ContractHash)
		assert.Len(t, item.ContentHash, 32)
	})

	t.Run("canonically equal item is deduplicated", func(t *testing.T) {
		first, created, err := store.CreateItem(ctx, CreateItemInput{
			Item: json.RawMessage(`{"name":"Dup","meta":{"a":1,"b":2}}`),
		})
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := store.CreateItem(ctx, CreateItemInput{
			Item: json.RawMessage(`{ "meta": {"b": 2, "a": 1.0}, "name": "Dup" }`),
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		_, _, err := store.CreateItem(ctx, CreateItemInput{Item: json.RawMessage(`{"name":`)})
		assert.Error(t, err)
	})
}

func testListItems(t *testing.T, store Store) {
	ctx := context.Background()
	other := "hash-" + strings.Repeat("cd", 32)

	for i, contract := range []string{testContract, testContract, other} {
		_, created, err := store.CreateItem(ctx, buildTestItem(contract, "", map[string]interface{}{
			"name": "Listed",
			"seq":  i,
		}))
		require.NoError(t, err)
		require.True(t, created)
	}

	t.Run("filter by contract", func(t *testing.T) {
		items, err := store.ListItems(ctx, ItemFilter{ContractHash: testContract})
		require.NoError(t, err)
		assert.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, strings.Repeat("ab", 32), item.ContractHash)
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		items, err := store.ListItems(ctx, ItemFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		rest, err := store.ListItems(ctx, ItemFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

// =============================================================================
// Test: Deploys
// =============================================================================

func testDeploys(t *testing.T, store Store) {
	ctx := context.Background()
	hash := strings.Repeat("de", 32)

	t.Run("get unknown deploy returns nil", func(t *testing.T) {
		deploy, err := store.GetDeploy(ctx, strings.Repeat("00", 32))
		require.NoError(t, err)
		assert.Nil(t, deploy)
	})

	t.Run("create deploy is idempotent", func(t *testing.T) {
		input := CreateDeployInput{DeployHash: hash, Operation: "mint", Sender: "01" + strings.Repeat("11", 32)}
		require.NoError(t, store.CreateDeploy(ctx, input))
		require.NoError(t, store.CreateDeploy(ctx, input))

		deploy, err := store.GetDeploy(ctx, hash)
		require.NoError(t, err)
		require.NotNil(t, deploy)
		assert.Equal(t, domain.DeployStateSubmitted, deploy.State)
		assert.Equal(t, "mint", deploy.Operation)
		assert.Nil(t, deploy.FinalizedAt)
	})

	t.Run("terminal outcome sets finalized time", func(t *testing.T) {
		err := store.UpdateDeployOutcome(ctx, domain.DeployOutcome{
			DeployHash:   hash,
			State:        domain.DeployStateFailure,
			BlockHash:    strings.Repeat("bb", 32),
			Cost:         "100000",
			ErrorMessage: "User error: 1",
		})
		require.NoError(t, err)

		deploy, err := store.GetDeploy(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, domain.DeployStateFailure, deploy.State)
		assert.Equal(t, "User error: 1", deploy.ErrorMessage)
		assert.Equal(t, "mint", deploy.Operation)
		assert.NotNil(t, deploy.FinalizedAt)
		assert.Equal(t, domain.DeployStateFailure, deploy.Outcome().State)
	})

	t.Run("outcome of an unknown deploy creates it", func(t *testing.T) {
		unknown := strings.Repeat("ef", 32)
		err := store.UpdateDeployOutcome(ctx, domain.DeployOutcome{DeployHash: unknown, State: domain.DeployStateTimedOut})
		require.NoError(t, err)

		deploy, err := store.GetDeploy(ctx, unknown)
		require.NoError(t, err)
		require.NotNil(t, deploy)
		assert.Equal(t, domain.DeployStateTimedOut, deploy.State)
	})
}

// =============================================================================
// Test: Stream cursor
// =============================================================================

func testStreamCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get non-existent cursor returns empty", func(t *testing.T) {
		cursor, err := store.GetStreamCursor(ctx, "test_stream_nonexistent")
		require.NoError(t, err)
		assert.Empty(t, cursor)
	})

	t.Run("set and get cursor", func(t *testing.T) {
		err := store.SetStreamCursor(ctx, "test_stream_cursor", "12345")
		require.NoError(t, err)

		cursor, err := store.GetStreamCursor(ctx, "test_stream_cursor")
		require.NoError(t, err)
		assert.Equal(t, "12345", cursor)
	})

	t.Run("update existing cursor", func(t *testing.T) {
		require.NoError(t, store.SetStreamCursor(ctx, "test_stream_update", "100"))
		require.NoError(t, store.SetStreamCursor(ctx, "test_stream_update", "200"))

		cursor, err := store.GetStreamCursor(ctx, "test_stream_update")
		require.NoError(t, err)
		assert.Equal(t, "200", cursor)
	})
}

// RunStoreTests runs all store tests with the given initializer
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateItem", testCreateItem},
		{"ListItems", testListItems},
		{"Deploys", testDeploys},
		{"StreamCursor", testStreamCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
