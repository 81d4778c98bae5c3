package warehouse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// Index describes a secondary index on a warehouse table.
type Index struct {
	Name    string
	Table   string
	Columns []string
}

// SecondaryIndexes are the indexes backing the reporting queries.
var SecondaryIndexes = []Index{
	{Name: "idx_products_category", Table: "dim_products", Columns: []string{"category"}},
	{Name: "idx_riders_courier_name", Table: "dim_riders", Columns: []string{"courier_name"}},
	{Name: "idx_users_country", Table: "dim_users", Columns: []string{"country"}},
	{Name: "idx_users_city", Table: "dim_users", Columns: []string{"city"}},
	{Name: "idx_orders_created_at", Table: "fact_orders", Columns: []string{"created_at"}},
	{Name: "idx_orders_created_at_order_id", Table: "fact_orders", Columns: []string{"created_at", "order_id"}},
}

// Postgres error codes for "already exists" class failures.
const (
	errDuplicateTable  = "42P07"
	errDuplicateObject = "42710"
)

func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == errDuplicateTable || pgErr.Code == errDuplicateObject
	}
	return false
}

// CreateIndexes creates the secondary indexes. An index that already
// exists is an idempotency signal, logged and skipped; any other DDL
// error is fatal.
func CreateIndexes(ctx context.Context, q db.Querier) error {
	for _, idx := range SecondaryIndexes {
		sql := fmt.Sprintf("CREATE INDEX %s ON %s(%s)",
			idx.Name, idx.Table, strings.Join(idx.Columns, ", "))
		if _, err := q.Exec(ctx, sql); err != nil {
			if isAlreadyExists(err) {
				logging.Info().Str("index", idx.Name).Msg("Index already exists")
				continue
			}
			return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
		}
		logging.Info().Str("index", idx.Name).Msg("Index created")
	}
	return nil
}

// DropIndexes drops the secondary indexes, ignoring missing ones.
func DropIndexes(ctx context.Context, q db.Querier) error {
	for _, idx := range SecondaryIndexes {
		sql := fmt.Sprintf("DROP INDEX IF EXISTS %s", idx.Name)
		if _, err := q.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to drop index %s: %w", idx.Name, err)
		}
		logging.Info().Str("index", idx.Name).Msg("Index dropped")
	}
	return nil
}
