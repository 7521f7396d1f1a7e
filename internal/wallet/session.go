// Package wallet tracks the browser wallet state forwarded as signer events
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
)

// ErrUnknownEvent is returned for an event type the signer never emits
var ErrUnknownEvent = errors.New("unknown wallet event")

// Session holds the latest wallet state. The zero value is a disconnected wallet.
type Session struct {
	mu    sync.RWMutex
	state domain.WalletState
	key   *domain.PublicKey
	bus   *messaging.Bus
}

// NewSession creates a session publishing changes on bus. bus may be nil.
func NewSession(bus *messaging.Bus) *Session {
	return &Session{bus: bus}
}

// Apply folds a signer event into the session and publishes the new state on wallet.changed
func (s *Session) Apply(ctx context.Context, event domain.WalletEvent) (domain.WalletState, error) {
	if !event.Type.IsValid() {
		return domain.WalletState{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}

	s.mu.Lock()
	next := event.Detail
	switch event.Type {
	case domain.WalletEventDisconnected:
		next = domain.WalletState{}
	case domain.WalletEventLocked:
		next = s.state
		next.IsUnlocked = false
	}

	var key *domain.PublicKey
	if next.ActiveKey != "" {
		k, err := domain.ParsePublicKey(next.ActiveKey)
		if err != nil {
			s.mu.Unlock()
			return domain.WalletState{}, fmt.Errorf("invalid active key: %w", err)
		}
		key = &k
		next.ActiveKey = k.Hex()
	}
	s.state = next
	s.key = key
	s.mu.Unlock()

	logger.InfoCtx(ctx, "Wallet state changed",
		zap.String("event", string(event.Type)),
		zap.Bool("connected", next.IsConnected),
		zap.Bool("unlocked", next.IsUnlocked),
		zap.String("activeKey", next.ActiveKey))

	if s.bus != nil {
		s.bus.Publish(ctx, messaging.TopicWalletChanged, next)
	}
	return next, nil
}

// State returns a copy of the current wallet state
func (s *Session) State() domain.WalletState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsConnected reports whether a wallet is connected
func (s *Session) IsConnected(_ context.Context) (bool, error) {
	return s.State().IsConnected, nil
}

// ActivePublicKey returns the key selected in the wallet
func (s *Session) ActivePublicKey(_ context.Context) (domain.PublicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case !s.state.IsConnected || s.key == nil:
		return domain.PublicKey{}, domain.ErrWalletUnavailable
	case !s.state.IsUnlocked:
		return domain.PublicKey{}, domain.ErrWalletLocked
	}
	return *s.key, nil
}

// ActiveAccount returns the account hash of the active key, nil when no unlocked wallet is connected
func (s *Session) ActiveAccount(ctx context.Context) (*domain.AccountHash, error) {
	key, err := s.ActivePublicKey(ctx)
	if errors.Is(err, domain.ErrWalletUnavailable) || errors.Is(err, domain.ErrWalletLocked) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h := key.AccountHash()
	return &h, nil
}
