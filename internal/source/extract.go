package source

import (
	"context"
	"fmt"

	"github.com/trishaguarin/STADVDB-MCO1/internal/db"
	"github.com/trishaguarin/STADVDB-MCO1/internal/frame"
	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
)

// Extract reads a whole source relation into a frame.
func Extract(ctx context.Context, q db.Querier, relation string) (*frame.Frame, error) {
	rows, err := q.Query(ctx, fmt.Sprintf("SELECT * FROM %s", relation))
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", relation, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}

	f := frame.New(relation, cols)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", relation, err)
		}
		if err := f.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", relation, err)
	}

	logging.Info().
		Str("relation", relation).
		Int("rows", f.Len()).
		Msg("Extracted relation")
	return f, nil
}

// ExtractAll reads all six source relations, keyed by relation name.
func ExtractAll(ctx context.Context, q db.Querier) (map[string]*frame.Frame, error) {
	frames := make(map[string]*frame.Frame, len(Relations))
	for _, relation := range Relations {
		f, err := Extract(ctx, q, relation)
		if err != nil {
			return nil, err
		}
		frames[relation] = f
	}
	return frames, nil
}
