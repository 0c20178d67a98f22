package vault

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotConnected is returned by a session with no wallet address.
var ErrNotConnected = errors.New("no wallet connected")

// Session tracks the currently connected wallet address. Switching addresses
// discards the holder cached for the previous one.
type Session struct {
	mu      sync.RWMutex
	locator *Locator
	address common.Address
}

// NewSession creates a session without a connected address.
func (l *Locator) NewSession() *Session {
	return &Session{locator: l}
}

// Connect sets the connected wallet address.
func (s *Session) Connect(address common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.address != (common.Address{}) && s.address != address {
		s.locator.Invalidate(s.address)
	}
	s.address = address
}

// Address returns the connected wallet address, zero when disconnected.
func (s *Session) Address() common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

// Holder locates the vault holder of the connected wallet.
func (s *Session) Holder(ctx context.Context) (*Reference, error) {
	addr := s.Address()
	if addr == (common.Address{}) {
		return nil, ErrNotConnected
	}
	return s.locator.Locate(ctx, addr)
}
