package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"refdesk/internal/types"
)

const collectionSchemaVersion = 1

// fileRepository keeps each collection in its own JSON file under the
// collections directory. Writes are atomic (temp file + rename), so a
// crash never leaves a half-written collection behind.
type fileRepository struct {
	docs DocStore
}

func NewFileRepository(dir string) (Repository, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("collections directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &fileRepository{docs: &fileDocStore{dir: dir}}, nil
}

func (r *fileRepository) Docs() DocStore {
	return r.docs
}

func (r *fileRepository) Backend() string {
	return RepositoryBackendFile
}

func (r *fileRepository) Close() error {
	return nil
}

type collectionFile struct {
	Version   int        `json:"version"`
	Documents []Document `json:"documents"`
}

type fileDocStore struct {
	dir string
	mu  sync.Mutex
}

func (s *fileDocStore) path(collection types.Collection) string {
	return filepath.Join(s.dir, string(collection)+".json")
}

func (s *fileDocStore) load(collection types.Collection) (*collectionFile, error) {
	if !validCollection(collection) {
		return nil, ErrUnknownCollection
	}
	file := &collectionFile{Version: collectionSchemaVersion, Documents: []Document{}}
	if err := readJSON(s.path(collection), file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return file, nil
		}
		return nil, err
	}
	if file.Documents == nil {
		file.Documents = []Document{}
	}
	return file, nil
}

func (s *fileDocStore) save(collection types.Collection, file *collectionFile) error {
	file.Version = collectionSchemaVersion
	sortDocs(file.Documents)
	return writeJSONAtomic(s.path(collection), file)
}

func (s *fileDocStore) List(ctx context.Context, collection types.Collection, filter DocFilter) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(file.Documents))
	for _, doc := range file.Documents {
		if !filter.matches(doc) {
			continue
		}
		out = append(out, cloneDoc(doc))
	}
	sortDocs(out)
	return out, nil
}

func (s *fileDocStore) Get(ctx context.Context, collection types.Collection, id string) (Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(collection)
	if err != nil {
		return nil, false, err
	}
	for _, doc := range file.Documents {
		if doc.ID() == id {
			return cloneDoc(doc), true, nil
		}
	}
	return nil, false, nil
}

func (s *fileDocStore) Create(ctx context.Context, collection types.Collection, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	doc := applyCreateFields(fields, time.Now())
	file.Documents = append(file.Documents, doc)
	if err := s.save(collection, file); err != nil {
		return nil, err
	}
	return cloneDoc(doc), nil
}

func (s *fileDocStore) Merge(ctx context.Context, collection types.Collection, id string, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	for i, doc := range file.Documents {
		if doc.ID() != id {
			continue
		}
		merged := mergeFields(doc, fields, time.Now())
		file.Documents[i] = merged
		if err := s.save(collection, file); err != nil {
			return nil, err
		}
		return cloneDoc(merged), nil
	}
	return nil, ErrDocNotFound
}

func (s *fileDocStore) Delete(ctx context.Context, collection types.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load(collection)
	if err != nil {
		return err
	}
	kept := file.Documents[:0]
	found := false
	for _, doc := range file.Documents {
		if doc.ID() == id {
			found = true
			continue
		}
		kept = append(kept, doc)
	}
	if !found {
		return ErrDocNotFound
	}
	file.Documents = kept
	return s.save(collection, file)
}
