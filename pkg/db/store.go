package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/upsc-exam-ai/data-scraper/pkg/domain"
)

// ErrNotConnected is returned when the store is used before Connect.
var ErrNotConnected = errors.New("postgres not connected")

// IngestResult is the outcome of an Insert.
type IngestResult int

const (
	// Inserted means a new row was created for the document's URL.
	Inserted IngestResult = iota
	// DuplicateSkipped means a row for the URL already existed, found
	// either by the pre-check or by the unique constraint. Never an
	// error.
	DuplicateSkipped
)

func (r IngestResult) String() string {
	if r == Inserted {
		return "inserted"
	}
	return "duplicate"
}

const articleSchema = `
CREATE TABLE IF NOT EXISTS ca_articles (
    id UUID PRIMARY KEY,
    published_date DATE NOT NULL,
    source_url TEXT NOT NULL UNIQUE,
    article JSONB NOT NULL,
    attachments JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_ca_articles_published_date ON ca_articles(published_date);
CREATE INDEX IF NOT EXISTS idx_ca_articles_source ON ca_articles ((article->>'source'));
`

// ArticleStore is the single write path into the durable store. Each
// document is written in its own transaction; the unique constraint on
// source_url is the authority on duplicates, the pre-check only saves a
// useless insert attempt.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore wraps a connected handle.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// InitSchema creates the article table and indexes if absent.
func (s *ArticleStore) InitSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}
	if _, err := s.db.ExecContext(ctx, articleSchema); err != nil {
		return fmt.Errorf("init article schema: %w", err)
	}
	return nil
}

// Exists checks for a stored row by exact source URL.
func (s *ArticleStore) Exists(ctx context.Context, sourceURL string) (bool, error) {
	if s.db == nil {
		return false, ErrNotConnected
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ca_articles WHERE source_url = $1)`, sourceURL,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// Insert stores one document. The existence re-check, the insert and
// the commit all happen inside one transaction; any failure rolls the
// whole document back and surfaces as an error for that document alone.
// A concurrent writer landing the same URL first is absorbed by ON
// CONFLICT and reported as DuplicateSkipped.
func (s *ArticleStore) Insert(ctx context.Context, doc *domain.Document) (IngestResult, error) {
	if s.db == nil {
		return DuplicateSkipped, ErrNotConnected
	}

	articleJSON, err := json.Marshal(doc)
	if err != nil {
		return DuplicateSkipped, fmt.Errorf("marshal document %s: %w", doc.SourceURL, err)
	}

	var attachmentsJSON []byte
	if len(doc.Images) > 0 {
		attachmentsJSON, err = json.Marshal(domain.Attachments{Images: doc.Images})
		if err != nil {
			return DuplicateSkipped, fmt.Errorf("marshal attachments %s: %w", doc.SourceURL, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DuplicateSkipped, fmt.Errorf("begin insert tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ca_articles WHERE source_url = $1)`, doc.SourceURL,
	).Scan(&exists)
	if err != nil {
		return DuplicateSkipped, fmt.Errorf("re-check article exists: %w", err)
	}
	if exists {
		return DuplicateSkipped, nil
	}

	var id string
	err = tx.QueryRowContext(ctx, `
INSERT INTO ca_articles (id, published_date, source_url, article, attachments)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (source_url) DO NOTHING
RETURNING id`,
		uuid.NewString(), doc.PublishedDate, doc.SourceURL, articleJSON, attachmentsJSON,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race to a concurrent writer; their row stands.
		return DuplicateSkipped, nil
	}
	if err != nil {
		return DuplicateSkipped, fmt.Errorf("insert article %s: %w", doc.SourceURL, err)
	}

	if err := tx.Commit(); err != nil {
		return DuplicateSkipped, fmt.Errorf("commit article %s: %w", doc.SourceURL, err)
	}
	return Inserted, nil
}

// Recent returns up to limit stored articles, newest first, optionally
// filtered by source name.
func (s *ArticleStore) Recent(ctx context.Context, limit int, source string) ([]domain.StoredArticle, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}

	query := `
SELECT id, published_date, source_url, article, attachments, created_at
FROM ca_articles
ORDER BY published_date DESC
LIMIT $1`
	args := []any{limit}
	if source != "" {
		query = `
SELECT id, published_date, source_url, article, attachments, created_at
FROM ca_articles
WHERE article->>'source' = $2
ORDER BY published_date DESC
LIMIT $1`
		args = append(args, source)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent articles: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredArticle
	for rows.Next() {
		var (
			rec             domain.StoredArticle
			articleJSON     []byte
			attachmentsJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.PublishedDate, &rec.SourceURL, &articleJSON, &attachmentsJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan article row: %w", err)
		}
		if err := json.Unmarshal(articleJSON, &rec.Document); err != nil {
			return nil, fmt.Errorf("decode article %s: %w", rec.SourceURL, err)
		}
		if len(attachmentsJSON) > 0 {
			rec.Attachments = &domain.Attachments{}
			if err := json.Unmarshal(attachmentsJSON, rec.Attachments); err != nil {
				return nil, fmt.Errorf("decode attachments %s: %w", rec.SourceURL, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
