package vectorstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

//go:embed migrations
var migrationsFS embed.FS

// PostgresStore is the "external vector-database" Repository implementation:
// durability and the atomic-batch-visibility guarantee are Postgres's
// (single transaction per StoreBatch, row visible only on commit); ranking
// math mirrors MemoryStore's linear-scan cosine since no pgvector-style
// extension is assumed to be installed. This follows pkg/database/client.go's
// connection/migration wiring, adapted to raw SQL instead of an ent client —
// see DESIGN.md for why ent itself was dropped.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a pgx-backed *sql.DB, applies embedded migrations,
// and returns a ready Repository.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("vectorstore/postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("vectorstore/postgres: ping: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("vectorstore/postgres: migrate: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil || len(entries) == 0 {
		return fmt.Errorf("no embedded migrations found: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "runbook_chunks", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	// Close only the source driver: the migrate.Driver wraps the shared *sql.DB
	// and must not close it, mirroring pkg/database/client.go's same caution.
	return src.Close()
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Store(ctx context.Context, chunk domain.RunbookChunk) error {
	return s.StoreBatch(ctx, []domain.RunbookChunk{chunk})
}

func (s *PostgresStore) StoreBatch(ctx context.Context, chunks []domain.RunbookChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vectorstore/postgres: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const stmt = `
		INSERT INTO runbook_chunks (id, runbook_path, section_title, content, tags, applicable_shapes, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			runbook_path = EXCLUDED.runbook_path,
			section_title = EXCLUDED.section_title,
			content = EXCLUDED.content,
			tags = EXCLUDED.tags,
			applicable_shapes = EXCLUDED.applicable_shapes,
			embedding = EXCLUDED.embedding`

	for _, c := range chunks {
		tags, err := json.Marshal(c.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		shapes, err := json.Marshal(c.ApplicableShapes)
		if err != nil {
			return fmt.Errorf("marshal applicable shapes: %w", err)
		}
		embedding, err := json.Marshal(c.Embedding)
		if err != nil {
			return fmt.Errorf("marshal embedding: %w", err)
		}
		if _, err := tx.ExecContext(ctx, stmt, c.ID, c.RunbookPath, c.SectionTitle, c.Content, tags, shapes, embedding); err != nil {
			return fmt.Errorf("insert chunk %q: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]domain.ScoredChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, runbook_path, section_title, content, tags, applicable_shapes, embedding
		FROM runbook_chunks ORDER BY inserted_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("vectorstore/postgres: search query: %w", err)
	}
	defer rows.Close()

	scored := make([]domain.ScoredChunk, 0)
	for rows.Next() {
		var c domain.RunbookChunk
		var tagsJSON, shapesJSON, embeddingJSON []byte
		if err := rows.Scan(&c.ID, &c.RunbookPath, &c.SectionTitle, &c.Content, &tagsJSON, &shapesJSON, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &c.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		if err := json.Unmarshal(shapesJSON, &c.ApplicableShapes); err != nil {
			return nil, fmt.Errorf("unmarshal applicable shapes: %w", err)
		}
		if err := json.Unmarshal(embeddingJSON, &c.Embedding); err != nil {
			return nil, fmt.Errorf("unmarshal embedding: %w", err)
		}
		sim := CosineSimilarity(queryEmbedding, c.Embedding)
		scored = append(scored, domain.ScoredChunk{Chunk: c, SimilarityScore: sim})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vectorstore/postgres: row iteration: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if topK >= 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *PostgresStore) Delete(ctx context.Context, runbookPath string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runbook_chunks WHERE runbook_path = $1`, runbookPath)
	if err != nil {
		return fmt.Errorf("vectorstore/postgres: delete %q: %w", runbookPath, err)
	}
	return nil
}
