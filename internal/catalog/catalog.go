// Package catalog publishes extraction snapshots into PostgreSQL. Each source
// is stored once as a JSONB snapshot and once per entity with a pgvector stat
// profile used for nearest-neighbour lookups.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/worker"
)

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("catalog entry not found")

// publishBatchSize bounds the entity inserts sent in one round trip.
const publishBatchSize = 500

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS game_sources (
		hash        TEXT PRIMARY KEY,
		path        TEXT NOT NULL DEFAULT '',
		snapshot    JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS game_entities (
		source_hash TEXT NOT NULL REFERENCES game_sources(hash) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		name        TEXT NOT NULL,
		position    INT  NOT NULL,
		is_default  BOOLEAN NOT NULL,
		payload     JSONB NOT NULL,
		profile     vector(%d) NOT NULL,
		PRIMARY KEY (source_hash, kind, name)
	)`, ProfileDims),
	`CREATE INDEX IF NOT EXISTS game_entities_kind_idx ON game_entities (source_hash, kind)`,
}

// Row is one entity as stored in game_entities.
type Row struct {
	Kind     model.EntityType
	Name     string
	Position int
	Default  bool
	Payload  []byte
	Profile  []float32
}

// Rows flattens a snapshot into entity rows, kinds in AllKinds order and
// entities in list order.
func Rows(snap *model.Snapshot) ([]Row, error) {
	var rows []Row
	for _, kind := range model.AllKinds {
		for i, e := range snap.Entities(kind) {
			payload, err := json.Marshal(e)
			if err != nil {
				return nil, fmt.Errorf("encode %s %q: %w", kind, e.EntityName(), err)
			}
			rows = append(rows, Row{
				Kind:     kind,
				Name:     e.EntityName(),
				Position: i,
				Default:  snap.Defaults[kind],
				Payload:  payload,
				Profile:  Profile(e),
			})
		}
	}
	return rows, nil
}

// Match is one result of a similarity search.
type Match struct {
	Name     string
	Distance float64
	Payload  json.RawMessage
}

// Catalog stores snapshots and entity profiles.
type Catalog struct {
	pool *pgxpool.Pool
}

// New creates a catalog on an open pool.
func New(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

// Open connects to databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Catalog, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return New(pool), nil
}

// Close releases the pool.
func (c *Catalog) Close() {
	c.pool.Close()
}

// EnsureSchema creates the vector extension and the catalog tables.
func (c *Catalog) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure catalog schema: %w", err)
		}
	}
	log.Info().Msg("Catalog schema ensured")
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func putSnapshot(ctx context.Context, db execer, hash, path string, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO game_sources (hash, path, snapshot)
		VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO UPDATE
		SET snapshot = EXCLUDED.snapshot,
		    path = CASE WHEN EXCLUDED.path = '' THEN game_sources.path ELSE EXCLUDED.path END,
		    updated_at = NOW()
	`, hash, path, data)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", hash, err)
	}
	return nil
}

// PutSnapshot upserts the snapshot of one source without touching its entity rows.
func (c *Catalog) PutSnapshot(ctx context.Context, hash string, snap *model.Snapshot) error {
	return putSnapshot(ctx, c.pool, hash, "", snap)
}

// GetSnapshot loads the snapshot stored for a source hash.
func (c *Catalog) GetSnapshot(ctx context.Context, hash string) (*model.Snapshot, error) {
	var data []byte
	err := c.pool.QueryRow(ctx, `SELECT snapshot FROM game_sources WHERE hash = $1`, hash).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", hash, err)
	}
	return &snap, nil
}

// Publish replaces everything stored for snap's source in one transaction and
// returns the number of entity rows written.
func (c *Catalog) Publish(ctx context.Context, path string, snap *model.Snapshot) (int, error) {
	rows, err := Rows(snap)
	if err != nil {
		return 0, err
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := putSnapshot(ctx, tx, snap.SourceHash, path, snap); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM game_entities WHERE source_hash = $1`, snap.SourceHash); err != nil {
		return 0, fmt.Errorf("clear entities: %w", err)
	}

	for _, chunk := range worker.Chunk(rows, publishBatchSize) {
		if err := insertRows(ctx, tx, snap.SourceHash, chunk); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit publish: %w", err)
	}

	log.Info().
		Str("hash", snap.SourceHash).
		Str("path", path).
		Int("entities", len(rows)).
		Msg("Published snapshot to catalog")
	return len(rows), nil
}

func insertRows(ctx context.Context, tx pgx.Tx, hash string, rows []Row) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO game_entities (source_hash, kind, name, position, is_default, payload, profile)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, hash, string(r.Kind), r.Name, r.Position, r.Default, r.Payload, pgvector.NewVector(r.Profile))
	}
	br := tx.SendBatch(ctx, batch)
	for _, r := range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert %s %q: %w", r.Kind, r.Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	return nil
}

// Similar returns the entities of one kind in a source closest to the named
// entity by stat profile, nearest first. The entity itself is excluded.
func (c *Catalog) Similar(ctx context.Context, hash string, kind model.EntityType, name string, limit int) ([]Match, error) {
	var exists bool
	err := c.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM game_entities WHERE source_hash = $1 AND kind = $2 AND name = $3)
	`, hash, string(kind), name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("lookup %s %q: %w", kind, name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}

	rows, err := c.pool.Query(ctx, `
		SELECT e.name, e.profile <-> t.profile AS distance, e.payload
		FROM game_entities e
		JOIN game_entities t
		  ON t.source_hash = e.source_hash AND t.kind = e.kind AND t.name = $3
		WHERE e.source_hash = $1 AND e.kind = $2 AND e.name <> $3
		ORDER BY distance, e.position
		LIMIT $4
	`, hash, string(kind), name, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		var payload []byte
		if err := rows.Scan(&m.Name, &m.Distance, &payload); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Payload = payload
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return out, nil
}
