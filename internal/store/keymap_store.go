package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"refdesk/internal/types"
)

type KeymapStore interface {
	Load(ctx context.Context) (*types.Keymap, error)
	Save(ctx context.Context, keymap *types.Keymap) error
}

type fileKeymapStore struct {
	path string
	mu   sync.Mutex
}

func NewFileKeymapStore(path string) KeymapStore {
	return &fileKeymapStore{path: path}
}

func (s *fileKeymapStore) Load(ctx context.Context) (*types.Keymap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keymap := &types.Keymap{}
	if err := readJSON(s.path, keymap); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.DefaultKeymap(), nil
		}
		return nil, err
	}
	if keymap.Bindings == nil {
		keymap.Bindings = map[string]string{}
	}
	// Unset actions fall back to the defaults so new bindings keep
	// working after upgrades.
	defaults := types.DefaultKeymap()
	for action, key := range defaults.Bindings {
		if _, ok := keymap.Bindings[action]; !ok {
			keymap.Bindings[action] = key
		}
	}
	return keymap, nil
}

func (s *fileKeymapStore) Save(ctx context.Context, keymap *types.Keymap) error {
	if keymap == nil {
		return errors.New("keymap is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, keymap)
}
