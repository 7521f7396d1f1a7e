package emitter

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
)

// TokenReconciler reads the reconciled view of a token
//
//go:generate mockgen -source=refresher.go -destination=../mocks/token_reconciler.go -package=mocks -mock_names=TokenReconciler=MockTokenReconciler
type TokenReconciler interface {
	Reconcile(ctx context.Context, tokenID string) (*domain.NFTView, error)
}

// ViewCache keeps the latest reconciled view per token. Concurrent writers race; the last Put wins.
type ViewCache struct {
	mu    sync.RWMutex
	views map[string]domain.NFTView
}

// NewViewCache creates an empty cache
func NewViewCache() *ViewCache {
	return &ViewCache{views: make(map[string]domain.NFTView)}
}

// Get returns the cached view of a token
func (c *ViewCache) Get(tokenID string) (domain.NFTView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.views[tokenID]
	return v, ok
}

// Put stores a view, replacing any previous one
func (c *ViewCache) Put(view domain.NFTView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[view.TokenID] = view
}

// Delete drops the view of a token
func (c *ViewCache) Delete(tokenID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, tokenID)
}

// TokenIDs returns the cached token ids in numeric order
func (c *ViewCache) TokenIDs() []string {
	c.mu.RLock()
	ids := make([]string, 0, len(c.views))
	for id := range c.views {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseUint(ids[i], 10, 64)
		b, errB := strconv.ParseUint(ids[j], 10, 64)
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}

// Refresher re-reconciles tokens when contract events or wallet changes arrive on the bus
type Refresher struct {
	bus        *messaging.Bus
	reconciler TokenReconciler
	cache      *ViewCache
	mu         sync.Mutex
	unsubs     []func()
}

// NewRefresher creates a refresher writing into cache
func NewRefresher(bus *messaging.Bus, reconciler TokenReconciler, cache *ViewCache) *Refresher {
	return &Refresher{bus: bus, reconciler: reconciler, cache: cache}
}

// Start subscribes to contract.event and wallet.changed
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unsubs = append(r.unsubs,
		r.bus.Subscribe(messaging.TopicContractEvent, r.onContractEvent),
		r.bus.Subscribe(messaging.TopicWalletChanged, r.onWalletChanged),
	)
}

// Stop removes the bus subscriptions
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}

func (r *Refresher) onContractEvent(ctx context.Context, msg interface{}) {
	event, ok := msg.(*domain.ContractEvent)
	if !ok {
		return
	}
	tokenID, ok := event.TokenID()
	if !ok {
		logger.DebugCtx(ctx, "Contract event without token id", zap.String("kind", string(event.Kind)))
		return
	}

	if event.Kind == domain.EventKindBurnOne {
		r.cache.Delete(tokenID)
		return
	}
	r.Refresh(ctx, tokenID)
}

// owner and approval flags are relative to the wallet, so every cached view is stale
func (r *Refresher) onWalletChanged(ctx context.Context, _ interface{}) {
	for _, tokenID := range r.cache.TokenIDs() {
		if ctx.Err() != nil {
			return
		}
		r.Refresh(ctx, tokenID)
	}
}

// Refresh reconciles one token and stores the result
func (r *Refresher) Refresh(ctx context.Context, tokenID string) {
	view, err := r.reconciler.Reconcile(ctx, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			r.cache.Delete(tokenID)
			return
		}
		logger.WarnCtx(ctx, "Failed to refresh token", zap.String("tokenID", tokenID), zap.Error(err))
		return
	}
	r.cache.Put(*view)
}
