package savingsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chainsafe/bitsave-middleware/pkg/flowstore"
	mghelper "github.com/chainsafe/bitsave-middleware/pkg/pgutil/migrations"
)

// flows are looked up by owner and plan, and listed newest first.
var flowIndexColumns = []string{"user_address", "plan", "created_at"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if err := mghelper.CreateSchema(ctx, db, &flowstore.FlowDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &flowstore.FlowDao{}, flowIndexColumns...)
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropTables(ctx, db, &flowstore.FlowDao{})
	})
}
