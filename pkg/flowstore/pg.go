package flowstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
)

const defaultListLimit = 50

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the flow store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// SaveFlow inserts the flow or replaces its mutable columns.
func (s *pgStore) SaveFlow(ctx context.Context, snap *orchestrator.Snapshot) error {
	dao := toFlowDao(snap)

	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (id) DO UPDATE").
		Set("phase = EXCLUDED.phase").
		Set("loading = EXCLUDED.loading").
		Set("error_kind = EXCLUDED.error_kind").
		Set("error_phase = EXCLUDED.error_phase").
		Set("error_title = EXCLUDED.error_title").
		Set("error_message = EXCLUDED.error_message").
		Set("transactions = EXCLUDED.transactions").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save flow: %w", err)
	}
	return nil
}

func (s *pgStore) GetFlow(ctx context.Context, id uuid.UUID) (*orchestrator.Snapshot, error) {
	dao := new(FlowDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to get flow: %w", err)
	}
	return toSnapshot(dao), nil
}

// ListFlows returns flows newest first.
func (s *pgStore) ListFlows(ctx context.Context, opts ...QueryOption) ([]*orchestrator.Snapshot, error) {
	options := &QueryOptions{Limit: defaultListLimit}
	for _, opt := range opts {
		opt(options)
	}

	var daos []FlowDao
	query := s.db.NewSelect().Model(&daos)
	if options.User != nil {
		query = query.Where("user_address = ?", normalizeAddress(*options.User))
	}
	if options.Plan != nil {
		query = query.Where("plan = ?", *options.Plan)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}

	err := query.Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}

	out := make([]*orchestrator.Snapshot, len(daos))
	for i := range daos {
		out[i] = toSnapshot(&daos[i])
	}
	return out, nil
}

var _ Store = (*pgStore)(nil)
