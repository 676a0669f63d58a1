package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"refdesk/internal/types"
)

var (
	bucketHotkeys   = []byte("hotkeys")
	bucketWorkflows = []byte("workflows")
	bucketNotes     = []byte("notes")
)

type bboltRepository struct {
	db   *bolt.DB
	docs DocStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{
		db:   db,
		docs: &bboltDocStore{db: db},
	}, nil
}

func (r *bboltRepository) Docs() DocStore {
	return r.docs
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketHotkeys, bucketWorkflows, bucketNotes} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

func collectionBucket(collection types.Collection) ([]byte, error) {
	switch collection {
	case types.CollectionHotkeys:
		return bucketHotkeys, nil
	case types.CollectionWorkflows:
		return bucketWorkflows, nil
	case types.CollectionNotes:
		return bucketNotes, nil
	}
	return nil, ErrUnknownCollection
}

type bboltDocStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltDocStore) List(ctx context.Context, collection types.Collection, filter DocFilter) ([]Document, error) {
	bucket, err := collectionBucket(collection)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0)
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		// ULID keys iterate in creation order.
		return b.ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			if !filter.matches(doc) {
				return nil
			}
			out = append(out, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltDocStore) Get(ctx context.Context, collection types.Collection, id string) (Document, bool, error) {
	bucket, err := collectionBucket(collection)
	if err != nil {
		return nil, false, err
	}
	var doc Document
	found := false
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &doc)
	})
	if err != nil {
		return nil, false, err
	}
	return doc, found, nil
}

func (s *bboltDocStore) Create(ctx context.Context, collection types.Collection, fields Document) (Document, error) {
	bucket, err := collectionBucket(collection)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := applyCreateFields(fields, time.Now())
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrUnknownCollection
		}
		return b.Put([]byte(doc.ID()), raw)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *bboltDocStore) Merge(ctx context.Context, collection types.Collection, id string, fields Document) (Document, error) {
	bucket, err := collectionBucket(collection)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var merged Document
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrUnknownCollection
		}
		raw := b.Get([]byte(id))
		if raw == nil {
			return ErrDocNotFound
		}
		var existing Document
		if err := json.Unmarshal(raw, &existing); err != nil {
			return err
		}
		merged = mergeFields(existing, fields, time.Now())
		out, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), out)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *bboltDocStore) Delete(ctx context.Context, collection types.Collection, id string) error {
	bucket, err := collectionBucket(collection)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrUnknownCollection
		}
		if b.Get([]byte(id)) == nil {
			return ErrDocNotFound
		}
		return b.Delete([]byte(id))
	})
}
