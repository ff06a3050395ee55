package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/katalvlaran/panelwire/wire"
)

// Dialect names the SQL flavour a store speaks.
type Dialect string

// Supported dialects. The values double as database/sql driver names.
const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

const createFieldsTable = `
CREATE TABLE IF NOT EXISTS panel_fields (
    object_id BIGINT NOT NULL,
    field     BIGINT NOT NULL,
    payload   TEXT   NOT NULL,
    PRIMARY KEY (object_id, field)
);
`

const (
	selectField = `SELECT payload FROM panel_fields WHERE object_id = ? AND field = ?`
	upsertField = `INSERT INTO panel_fields (object_id, field, payload) VALUES (?, ?, ?)
ON CONFLICT (object_id, field) DO UPDATE SET payload = excluded.payload`
	selectObjects = `SELECT DISTINCT object_id FROM panel_fields ORDER BY object_id`
)

// SQL is a wire.Storage over one database table. Each field is a row whose
// payload is a JSON array of numbers.
type SQL struct {
	db      *sql.DB
	dialect Dialect
	closed  atomic.Bool
}

// OpenSQLite opens (creating if needed) the SQLite database at dsn.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, dsn string) (*SQL, error) {
	return Open(ctx, SQLite, dsn)
}

// OpenPostgres connects to PostgreSQL with a lib/pq connection string.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	return Open(ctx, Postgres, dsn)
}

// Open connects with the given dialect, checks the connection and creates
// the field table.
func Open(ctx context.Context, d Dialect, dsn string) (*SQL, error) {
	if d != SQLite && d != Postgres {
		return nil, fmt.Errorf("store.Open(%q): %w", d, ErrUnknownDialect)
	}
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open(%s): %w", d, err)
	}
	if d == SQLite {
		// every :memory: connection is its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open(%s) ping: %w", d, err)
	}
	s := &SQL{db: db, dialect: d}
	if _, err := db.ExecContext(ctx, createFieldsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open(%s) schema: %w", d, err)
	}
	return s, nil
}

// Dialect reports the SQL flavour s speaks.
func (s *SQL) Dialect() Dialect { return s.dialect }

// Close releases the database handle.
func (s *SQL) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// bind rewrites ? placeholders for the dialect.
func (s *SQL) bind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQL) load(ctx context.Context, op string, id wire.ObjectID, f wire.Field, dst any) error {
	if s.closed.Load() {
		return fmt.Errorf("SQL.%s(%s, %s): %w", op, id, f, ErrClosed)
	}
	var payload string
	err := s.db.QueryRowContext(ctx, s.bind(selectField), int64(id), int64(f)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("SQL.%s(%s, %s): %w", op, id, f, err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return fmt.Errorf("SQL.%s(%s, %s) payload: %w", op, id, f, err)
	}
	return nil
}

func (s *SQL) save(ctx context.Context, op string, id wire.ObjectID, f wire.Field, v any) error {
	if s.closed.Load() {
		return fmt.Errorf("SQL.%s(%s, %s): %w", op, id, f, ErrClosed)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("SQL.%s(%s, %s) payload: %w", op, id, f, err)
	}
	if _, err := s.db.ExecContext(ctx, s.bind(upsertField), int64(id), int64(f), string(payload)); err != nil {
		return fmt.Errorf("SQL.%s(%s, %s): %w", op, id, f, err)
	}
	return nil
}

// ReadInt implements wire.Storage.
func (s *SQL) ReadInt(ctx context.Context, id wire.ObjectID, f wire.Field) (int32, error) {
	var vs []float64
	if err := s.load(ctx, "ReadInt", id, f, &vs); err != nil || len(vs) == 0 {
		return 0, err
	}
	return int32(vs[0]), nil
}

// ReadFloat implements wire.Storage.
func (s *SQL) ReadFloat(ctx context.Context, id wire.ObjectID, f wire.Field) (float32, error) {
	var vs []float32
	if err := s.load(ctx, "ReadFloat", id, f, &vs); err != nil || len(vs) == 0 {
		return 0, err
	}
	return vs[0], nil
}

// ReadInts implements wire.Storage.
func (s *SQL) ReadInts(ctx context.Context, id wire.ObjectID, f wire.Field, n int) ([]int32, error) {
	if n < 0 {
		return nil, fmt.Errorf("SQL.ReadInts(%s, %s, %d): %w", id, f, n, ErrNegativeCount)
	}
	var vs []float64
	if err := s.load(ctx, "ReadInts", id, f, &vs); err != nil {
		return nil, err
	}
	out := make([]int32, min(n, len(vs)))
	for i := range out {
		out[i] = int32(vs[i])
	}
	return out, nil
}

// ReadFloats implements wire.Storage.
func (s *SQL) ReadFloats(ctx context.Context, id wire.ObjectID, f wire.Field, n int) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("SQL.ReadFloats(%s, %s, %d): %w", id, f, n, ErrNegativeCount)
	}
	var vs []float32
	if err := s.load(ctx, "ReadFloats", id, f, &vs); err != nil {
		return nil, err
	}
	return append([]float32{}, vs[:min(n, len(vs))]...), nil
}

// WriteInt implements wire.Storage.
func (s *SQL) WriteInt(ctx context.Context, id wire.ObjectID, f wire.Field, v int32) error {
	return s.save(ctx, "WriteInt", id, f, []int32{v})
}

// WriteFloat implements wire.Storage.
func (s *SQL) WriteFloat(ctx context.Context, id wire.ObjectID, f wire.Field, v float32) error {
	return s.save(ctx, "WriteFloat", id, f, []float32{v})
}

// WriteInts implements wire.Storage.
func (s *SQL) WriteInts(ctx context.Context, id wire.ObjectID, f wire.Field, vs []int32) error {
	if vs == nil {
		vs = []int32{}
	}
	return s.save(ctx, "WriteInts", id, f, vs)
}

// WriteFloats implements wire.Storage.
func (s *SQL) WriteFloats(ctx context.Context, id wire.ObjectID, f wire.Field, vs []float32) error {
	if vs == nil {
		vs = []float32{}
	}
	return s.save(ctx, "WriteFloats", id, f, vs)
}

// Objects returns every object with at least one stored field, ascending.
func (s *SQL) Objects(ctx context.Context) ([]wire.ObjectID, error) {
	if s.closed.Load() {
		return nil, fmt.Errorf("SQL.Objects: %w", ErrClosed)
	}
	rows, err := s.db.QueryContext(ctx, selectObjects)
	if err != nil {
		return nil, fmt.Errorf("SQL.Objects: %w", err)
	}
	defer rows.Close()
	var out []wire.ObjectID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("SQL.Objects: %w", err)
		}
		out = append(out, wire.ObjectID(id))
	}
	return out, rows.Err()
}

var _ wire.Storage = (*SQL)(nil)
