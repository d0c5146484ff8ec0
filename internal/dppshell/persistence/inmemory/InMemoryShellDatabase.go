// Package persistence_inmemory provides the default in-process shell store.
package persistence_inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// InMemoryShellDatabase keeps shells in a map guarded by an RWMutex.
// Mutations replace the stored pointer wholesale (copy-on-write), so
// concurrent readers holding an earlier snapshot are never exposed to a
// partially mutated shell. Per-identifier locks serialize writers on the
// same shell while writers on distinct shells proceed independently.
type InMemoryShellDatabase struct {
	mu     sync.RWMutex
	shells map[string]*model.Shell

	keyLocks sync.Map // id -> *sync.Mutex
}

// NewInMemoryShellDatabase creates an empty store.
func NewInMemoryShellDatabase() *InMemoryShellDatabase {
	return &InMemoryShellDatabase{
		shells: make(map[string]*model.Shell),
	}
}

func (db *InMemoryShellDatabase) lockFor(id string) *sync.Mutex {
	l, _ := db.keyLocks.LoadOrStore(id, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// Insert stores a new shell, failing on an identifier collision.
func (db *InMemoryShellDatabase) Insert(_ context.Context, shell *model.Shell) error {
	lock := db.lockFor(shell.ID)
	lock.Lock()
	defer lock.Unlock()

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, exists := db.shells[shell.ID]; exists {
		return common.NewErrBadRequest("shell identifier already exists: " + shell.ID)
	}
	db.shells[shell.ID] = shell.Clone()
	return nil
}

// Get returns a deep copy of the stored shell.
func (db *InMemoryShellDatabase) Get(_ context.Context, id string) (*model.Shell, error) {
	db.mu.RLock()
	stored, ok := db.shells[id]
	db.mu.RUnlock()
	if !ok {
		return nil, common.NewErrNotFound("shell '" + id + "'")
	}
	return stored.Clone(), nil
}

// GetAll returns deep copies of all shells, creation time ascending. Ties
// are broken by identifier so pagination stays deterministic.
func (db *InMemoryShellDatabase) GetAll(_ context.Context) ([]*model.Shell, error) {
	db.mu.RLock()
	out := make([]*model.Shell, 0, len(db.shells))
	for _, s := range db.shells {
		out = append(out, s.Clone())
	}
	db.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID < out[j].ID
		}
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}

// Update applies mutate to a private copy and installs it atomically.
func (db *InMemoryShellDatabase) Update(_ context.Context, id string, mutate func(*model.Shell) error) (*model.Shell, error) {
	lock := db.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	db.mu.RLock()
	stored, ok := db.shells[id]
	db.mu.RUnlock()
	if !ok {
		return nil, common.NewErrNotFound("shell '" + id + "'")
	}

	next := stored.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}

	db.mu.Lock()
	db.shells[id] = next
	db.mu.Unlock()
	return next.Clone(), nil
}

// Delete removes the shell; the cascade is implicit since the shell owns
// its submodels and elements.
func (db *InMemoryShellDatabase) Delete(_ context.Context, id string) error {
	lock := db.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.shells[id]; !ok {
		return common.NewErrNotFound("shell '" + id + "'")
	}
	delete(db.shells, id)
	return nil
}

// ExistsIdShort reports whether any shell carries the idShort (case-insensitive).
func (db *InMemoryShellDatabase) ExistsIdShort(_ context.Context, idShort string) (bool, error) {
	needle := strings.ToLower(idShort)
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, s := range db.shells {
		if strings.ToLower(s.IdShort) == needle {
			return true, nil
		}
	}
	return false, nil
}
