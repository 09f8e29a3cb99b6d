// Package store implements the record store: named collections of
// schema-less JSON documents with store-generated keys, backed by a single
// PostgreSQL JSONB table.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is one record in a collection. Data holds the loosely-typed
// field/value pairs; Key is the store-generated identifier, distinct from any
// human-facing sequential ID kept inside Data.
type Document struct {
	Key        uuid.UUID
	Collection string
	Data       map[string]interface{}
	CreatedAt  time.Time
}

// FindOptions controls ordering and windowing of multi-document reads. The
// zero value means natural (insertion) order with no limit.
type FindOptions struct {
	OrderBy string // document field to order by; "" = insertion order
	Desc    bool
	Limit   int // 0 = no limit
	Offset  int
}

// Store is an explicitly constructed handle over the documents table. It is
// opened once at process start and injected into every service.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const docCols = `id, collection, doc, created_at`

// InsertOne persists a new document and returns its store-generated key.
func (s *Store) InsertOne(ctx context.Context, collection string, data map[string]interface{}) (uuid.UUID, error) {
	key := uuid.New()
	raw, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal document: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (id, collection, doc) VALUES ($1, $2, $3)`,
		key, collection, raw)
	if err != nil {
		return uuid.Nil, wrap("insert "+collection, err)
	}
	return key, nil
}

// FindByKey returns the document with the given store key, or ErrNotFound.
func (s *Store) FindByKey(ctx context.Context, collection string, key uuid.UUID) (*Document, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+docCols+` FROM documents WHERE collection = $1 AND id = $2`,
		collection, key)
	doc, err := scanDoc(row)
	if err != nil {
		return nil, wrap("find "+collection, err)
	}
	return doc, nil
}

// FindAll returns documents in the collection ordered per opts.
func (s *Store) FindAll(ctx context.Context, collection string, opts FindOptions) ([]*Document, error) {
	return s.Find(ctx, collection, Filter{}, opts)
}

// Find returns documents matching the filter. An empty filter matches the
// whole collection.
func (s *Store) Find(ctx context.Context, collection string, f Filter, opts FindOptions) ([]*Document, error) {
	where, args, idx := f.SQL(2)
	args = append([]interface{}{collection}, args...)

	sql := `SELECT ` + docCols + ` FROM documents WHERE collection = $1 AND ` + where
	if opts.OrderBy != "" {
		dir := "ASC"
		if opts.Desc {
			dir = "DESC"
		}
		sql += fmt.Sprintf(` ORDER BY doc->>'%s' %s`, fieldName(opts.OrderBy), dir)
	} else {
		sql += ` ORDER BY created_at, id`
	}
	if opts.Limit > 0 {
		sql += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("find "+collection, err)
	}
	defer rows.Close()
	return collectDocs(collection, rows)
}

// UpdateOne merges fields into the document with the given key (partial field
// replace). Returns ErrNotFound when the key resolves to no document.
func (s *Store) UpdateOne(ctx context.Context, collection string, key uuid.UUID, fields map[string]interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET doc = doc || $3 WHERE collection = $1 AND id = $2`,
		collection, key, raw)
	if err != nil {
		return wrap("update "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOne removes the document with the given key. Returns ErrNotFound
// when zero documents were removed.
func (s *Store) DeleteOne(ctx context.Context, collection string, key uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, key)
	if err != nil {
		return wrap("delete "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of documents matching the filter.
func (s *Store) Count(ctx context.Context, collection string, f Filter) (int, error) {
	where, args, _ := f.SQL(2)
	args = append([]interface{}{collection}, args...)

	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = $1 AND `+where,
		args...).Scan(&total)
	if err != nil {
		return 0, wrap("count "+collection, err)
	}
	return total, nil
}

// Distinct returns the sorted set of non-empty values of a document field
// across the collection.
func (s *Store) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT doc->>'%s' FROM documents
		 WHERE collection = $1 AND COALESCE(doc->>'%s', '') <> ''
		 ORDER BY 1`, fieldName(field), fieldName(field)),
		collection)
	if err != nil {
		return nil, wrap("distinct "+collection, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, wrap("distinct "+collection, err)
		}
		values = append(values, v)
	}
	return values, wrap("distinct "+collection, rows.Err())
}

// FindMax returns the document with the lexicographically greatest value of
// the given field, or ErrNotFound when no document carries the field.
func (s *Store) FindMax(ctx context.Context, collection, field string) (*Document, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT `+docCols+` FROM documents
		 WHERE collection = $1 AND doc ? '%s'
		 ORDER BY doc->>'%s' DESC LIMIT 1`, fieldName(field), fieldName(field)),
		collection)
	doc, err := scanDoc(row)
	if err != nil {
		return nil, wrap("find max "+collection, err)
	}
	return doc, nil
}

func scanDoc(row pgx.Row) (*Document, error) {
	var d Document
	var raw []byte
	if err := row.Scan(&d.Key, &d.Collection, &raw, &d.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &d.Data); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", d.Key, err)
	}
	return &d, nil
}

func collectDocs(collection string, rows pgx.Rows) ([]*Document, error) {
	var docs []*Document
	for rows.Next() {
		var d Document
		var raw []byte
		if err := rows.Scan(&d.Key, &d.Collection, &raw, &d.CreatedAt); err != nil {
			return nil, wrap("scan "+collection, err)
		}
		if err := json.Unmarshal(raw, &d.Data); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", d.Key, err)
		}
		docs = append(docs, &d)
	}
	return docs, wrap("iterate "+collection, rows.Err())
}
