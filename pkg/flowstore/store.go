// Package flowstore persists the history of savings transaction flows.
package flowstore

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
)

// ErrFlowNotFound is returned when a flow lookup finds no matching record.
var ErrFlowNotFound = errors.New("flow not found")

// Store defines flow history persistence
type Store interface {
	SaveFlow(ctx context.Context, s *orchestrator.Snapshot) error
	GetFlow(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error)
	ListFlows(ctx context.Context, opts ...QueryOption) ([]*orchestrator.Snapshot, error)
}

// QueryOptions defines filters for listing flows
type QueryOptions struct {
	User  *common.Address
	Plan  *string
	Limit int
}

// QueryOption is a functional option for listing flows
type QueryOption func(*QueryOptions)

// WithUser restricts results to flows of one wallet
func WithUser(user common.Address) QueryOption {
	return func(opts *QueryOptions) {
		opts.User = &user
	}
}

// WithPlan restricts results to flows of one savings plan
func WithPlan(plan string) QueryOption {
	return func(opts *QueryOptions) {
		opts.Plan = &plan
	}
}

// WithLimit caps the number of returned flows
func WithLimit(limit int) QueryOption {
	return func(opts *QueryOptions) {
		opts.Limit = limit
	}
}

func normalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
