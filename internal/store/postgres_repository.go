package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"refdesk/internal/types"
)

const (
	postgresDocsTableName    = "refdesk_documents"
	postgresOperationTimeout = 5 * time.Second
)

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// postgresRepository stores every collection in one table keyed by
// (collection, id). The document body is kept as JSON text so merge
// semantics stay identical to the other backends.
type postgresRepository struct {
	docs *postgresDocStore
}

func NewPostgresRepository(dsn string) (Repository, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	return &postgresRepository{
		docs: &postgresDocStore{
			dsn:       dsn,
			tableName: postgresDocsTableName,
			openDB:    sql.Open,
		},
	}, nil
}

func (r *postgresRepository) Docs() DocStore {
	return r.docs
}

func (r *postgresRepository) Backend() string {
	return RepositoryBackendPostgres
}

func (r *postgresRepository) Close() error {
	if r == nil || r.docs == nil || r.docs.db == nil {
		return nil
	}
	return r.docs.db.Close()
}

type postgresDocStore struct {
	dsn       string
	tableName string
	openDB    sqlOpenFunc

	initOnce sync.Once
	initErr  error
	db       *sql.DB
}

func (s *postgresDocStore) ensureReady() error {
	s.initOnce.Do(func() {
		db, err := s.openDB("postgres", s.dsn)
		if err != nil {
			s.initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), postgresOperationTimeout)
		defer cancel()
		schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			scope TEXT NOT NULL DEFAULT '',
			doc TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`, postgresQuoteIdentifier(s.tableName))
		if _, err := db.ExecContext(ctx, schema); err != nil {
			_ = db.Close()
			s.initErr = err
			return
		}
		s.db = db
	})
	return s.initErr
}

func (s *postgresDocStore) List(ctx context.Context, collection types.Collection, filter DocFilter) ([]Document, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf(
		"SELECT doc FROM %s WHERE collection = $1 AND ($2 = '' OR owner_id = $2) AND ($3 = '' OR scope = $3) ORDER BY id",
		postgresQuoteIdentifier(s.tableName),
	)
	rows, err := s.db.QueryContext(ctx, query, string(collection), filter.OwnerID, string(filter.Scope))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *postgresDocStore) Get(ctx context.Context, collection types.Collection, id string) (Document, bool, error) {
	if !validCollection(collection) {
		return nil, false, ErrUnknownCollection
	}
	if err := s.ensureReady(); err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT doc FROM %s WHERE collection = $1 AND id = $2", postgresQuoteIdentifier(s.tableName))
	var payload string
	err := s.db.QueryRowContext(ctx, query, string(collection), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (s *postgresDocStore) Create(ctx context.Context, collection types.Collection, fields Document) (Document, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	doc := applyCreateFields(fields, time.Now())
	if err := s.put(ctx, collection, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *postgresDocStore) Merge(ctx context.Context, collection types.Collection, id string, fields Document) (Document, error) {
	existing, found, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrDocNotFound
	}
	merged := mergeFields(existing, fields, time.Now())
	if err := s.put(ctx, collection, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *postgresDocStore) Delete(ctx context.Context, collection types.Collection, id string) error {
	if !validCollection(collection) {
		return ErrUnknownCollection
	}
	if err := s.ensureReady(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE collection = $1 AND id = $2", postgresQuoteIdentifier(s.tableName))
	result, err := s.db.ExecContext(ctx, query, string(collection), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocNotFound
	}
	return nil
}

func (s *postgresDocStore) put(ctx context.Context, collection types.Collection, doc Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (collection, id, owner_id, scope, doc)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id) DO UPDATE SET owner_id = $3, scope = $4, doc = $5`,
		postgresQuoteIdentifier(s.tableName))
	_, err = s.db.ExecContext(ctx, query, string(collection), doc.ID(), doc.OwnerID(), doc.Scope(), string(payload))
	return err
}

func postgresQuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
