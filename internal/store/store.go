// Package store persists document metadata and section rows in
// Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is a row from the documents table, joined with its storage
// object path.
type Document struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StoragePath   string    `json:"storage_object_path,omitempty"`
	FileType      string    `json:"file_type,omitempty"`
	FileSize      int64     `json:"file_size,omitempty"`
	TotalSections int       `json:"total_sections,omitempty"`
	TotalPages    int       `json:"total_pages,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DocumentMetadata is the set of fields ingestion derives for a
// document. TotalPages is nil for non-PDF formats.
type DocumentMetadata struct {
	FileType      string
	FileSize      int64
	TotalSections int
	TotalPages    *int
}

// SectionRow is one persisted section. Nil Heading, Part, Total, and
// PageNumber map to NULL columns.
type SectionRow struct {
	DocumentID int64
	Content    string
	Heading    *string
	Part       *int
	Total      *int
	PageNumber *int
}

// Store wraps a pgx pool with the queries ingestion needs.
type Store struct {
	pool *pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	return pool, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the ingestion tables when absent. The
// embedding column on document_sections belongs to the downstream
// embedding worker's migration, not this service.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			storage_object_path TEXT,
			file_type TEXT,
			file_size BIGINT,
			total_sections INT,
			total_pages INT,
			created_by TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS document_sections (
			id BIGSERIAL PRIMARY KEY,
			document_id BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			heading TEXT,
			part INT,
			total INT,
			page_number INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_document_sections_document ON document_sections(document_id)",
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}
	return nil
}

// GetDocument fetches a document by id. Returns (nil, nil) when no
// row exists.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(storage_object_path, ''),
		       COALESCE(file_type, ''), COALESCE(file_size, 0),
		       COALESCE(total_sections, 0), COALESCE(total_pages, 0),
		       COALESCE(created_by, ''), created_at
		FROM documents
		WHERE id = $1
	`, id).Scan(
		&doc.ID, &doc.Name, &doc.StoragePath,
		&doc.FileType, &doc.FileSize,
		&doc.TotalSections, &doc.TotalPages,
		&doc.CreatedBy, &doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return &doc, nil
}

// UpdateDocumentMetadata writes the derived metadata fields for a
// document. Called before the section insert; a later insert failure
// leaves these fields committed.
func (s *Store) UpdateDocumentMetadata(ctx context.Context, id int64, meta DocumentMetadata) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET file_type = $2, file_size = $3, total_sections = $4,
		    total_pages = COALESCE($5, total_pages)
		WHERE id = $1
	`, id, meta.FileType, meta.FileSize, meta.TotalSections, meta.TotalPages)
	if err != nil {
		return fmt.Errorf("update document %d metadata: %w", id, err)
	}
	return nil
}

// InsertSections writes all section rows for a document in one batch.
func (s *Store) InsertSections(ctx context.Context, rows []SectionRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO document_sections (document_id, content, heading, part, total, page_number)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, row.DocumentID, row.Content, row.Heading, row.Part, row.Total, row.PageNumber)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert section batch: %w", err)
		}
	}
	return nil
}

// DeleteSections removes all sections for a document and reports how
// many were deleted. Re-running ingestion appends a second full set
// of rows unless the prior set is deleted first.
func (s *Store) DeleteSections(ctx context.Context, documentID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM document_sections WHERE document_id = $1`, documentID)
	if err != nil {
		return 0, fmt.Errorf("delete sections for document %d: %w", documentID, err)
	}
	return tag.RowsAffected(), nil
}

// ListDocuments returns documents in most-recent-first order.
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(storage_object_path, ''),
		       COALESCE(file_type, ''), COALESCE(file_size, 0),
		       COALESCE(total_sections, 0), COALESCE(total_pages, 0),
		       COALESCE(created_by, ''), created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID, &doc.Name, &doc.StoragePath,
			&doc.FileType, &doc.FileSize,
			&doc.TotalSections, &doc.TotalPages,
			&doc.CreatedBy, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return docs, nil
}
