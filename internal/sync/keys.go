package sync

import (
	gosync "sync"

	"refdesk/internal/types"
)

// Key identifies one live query: which collection, for which
// principal, in which scope. The manager deduplicates subscriptions
// by Key pointer, so equal tuples must yield the same pointer; use a
// KeyBuilder, never construct a *Key by hand.
type Key struct {
	Collection  types.Collection
	PrincipalID string
	Scope       types.Scope
}

// KeyBuilder interns keys: the same (collection, principal, scope)
// tuple always comes back as the same pointer, which makes pointer
// identity the subscription identity.
type KeyBuilder struct {
	mu   gosync.Mutex
	keys map[Key]*Key
}

func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{keys: map[Key]*Key{}}
}

// Build returns the canonical key for the tuple, or nil when no
// principal is available; a nil key means "no query can be issued".
func (b *KeyBuilder) Build(principalID string, collection types.Collection, scope types.Scope) *Key {
	if principalID == "" {
		return nil
	}
	tuple := Key{Collection: collection, PrincipalID: principalID, Scope: scope}

	b.mu.Lock()
	defer b.mu.Unlock()
	if key, ok := b.keys[tuple]; ok {
		return key
	}
	key := &tuple
	b.keys[tuple] = key
	return key
}
