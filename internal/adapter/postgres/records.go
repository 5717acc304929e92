package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

const recordsTable = "study_records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RecordRepo stores named study records as JSONB rows.
type RecordRepo struct {
	q Querier
}

// NewRecordRepo creates a RecordRepo over a pool (or any Querier).
func NewRecordRepo(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// Load returns the raw record data. A missing row maps to domain.ErrNotFound.
func (r *RecordRepo) Load(ctx context.Context, name string) ([]byte, error) {
	query, args, err := psql.
		Select("data").
		From(recordsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, mapError(err, name)
	}

	var data []byte
	if err := r.q.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		return nil, mapError(err, name)
	}
	return data, nil
}

// Save upserts the record, replacing any previous data.
func (r *RecordRepo) Save(ctx context.Context, name string, data []byte) error {
	query, args, err := psql.
		Insert(recordsTable).
		Columns("name", "data", "updated_at").
		Values(name, string(data), sq.Expr("now()")).
		Suffix("ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return mapError(err, name)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, name)
	}
	return nil
}
