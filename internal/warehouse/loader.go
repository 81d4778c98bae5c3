package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/frame"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// WriteMode controls how the loader treats existing table data.
type WriteMode string

const (
	// Replace clears the target table before inserting.
	Replace WriteMode = "replace"
	// Append inserts without clearing. Not idempotent: a retried load
	// duplicates rows.
	Append WriteMode = "append"
	// Fail inserts only when the target table is empty.
	Fail WriteMode = "fail"
)

// Loader writes frames into warehouse tables in fixed-size batches using
// multi-row inserts. Batches are not wrapped in one overarching
// transaction: a failure partway through leaves the table partially
// populated and the caller must re-run the load.
type Loader struct {
	DB        db.Querier
	BatchSize int
}

// NewLoader returns a loader with the given batch size (rows per round
// trip).
func NewLoader(q db.Querier, batchSize int) *Loader {
	if batchSize < 1 {
		batchSize = 5000
	}
	return &Loader{DB: q, BatchSize: batchSize}
}

// maxBindParams is the Postgres protocol limit on bind parameters per
// statement.
const maxBindParams = 65535

// rowsPerBatch clamps the configured batch size to what the parameter
// limit allows for a table of the given width.
func rowsPerBatch(batchSize, cols int) int {
	if limit := maxBindParams / cols; batchSize > limit {
		return limit
	}
	return batchSize
}

// Load writes all rows of f into the named table under the given mode
// and returns the number of rows written.
func (l *Loader) Load(ctx context.Context, f *frame.Frame, table string, mode WriteMode) (int64, error) {
	switch mode {
	case Replace:
		if _, err := l.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return 0, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	case Append:
	case Fail:
		var n int64
		err := l.DB.QueryRow(ctx,
			fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("failed to check %s: %w", table, err)
		}
		if n > 0 {
			return 0, fmt.Errorf("table %s already has %d rows", table, n)
		}
	default:
		return 0, fmt.Errorf("unknown write mode %q", mode)
	}

	cols := f.Columns()
	batch := rowsPerBatch(l.BatchSize, len(cols))
	var written int64
	for start := 0; start < f.Len(); start += batch {
		end := min(start+batch, f.Len())

		sql := BuildInsertSQL(table, cols, end-start)
		args := make([]any, 0, (end-start)*len(cols))
		for i := start; i < end; i++ {
			args = append(args, f.Row(i)...)
		}

		if _, err := l.DB.Exec(ctx, sql, args...); err != nil {
			return written, fmt.Errorf("failed to load batch into %s: %w", table, err)
		}
		written += int64(end - start)

		logging.Debug().
			Str("table", table).
			Int64("rows", written).
			Int("total", f.Len()).
			Msg("Loaded batch")
	}

	logging.Info().
		Str("table", table).
		Int64("rows", written).
		Str("mode", string(mode)).
		Msg("Table loaded")
	return written, nil
}

// BuildInsertSQL renders a multi-row INSERT with one bound placeholder
// per value. Values are never inlined into the statement text.
func BuildInsertSQL(table string, cols []string, rowCount int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range cols {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
