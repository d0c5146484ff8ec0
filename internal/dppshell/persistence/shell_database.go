// Package persistence defines the storage boundary for DPP shells. The
// store is keyed by canonical shell identifier; backends must serialize
// mutations per key and hand out snapshots that never alias stored state.
package persistence

import (
	"context"

	"github.com/dpp40/dpp-go-components/internal/common/model"
)

// ShellDatabase is the key-value persistence boundary for shells.
//
// Get and GetAll return deep copies; mutating a returned shell never
// changes stored state. Update serializes concurrent mutations on the
// same identifier and installs the mutated copy atomically, so readers
// observe either the old or the new shell, never a partial one.
type ShellDatabase interface {
	// Insert stores a new shell. Fails if the identifier is taken.
	Insert(ctx context.Context, shell *model.Shell) error

	// Get returns the shell with the given canonical identifier.
	Get(ctx context.Context, id string) (*model.Shell, error)

	// GetAll returns all shells ordered by creation time ascending.
	GetAll(ctx context.Context) ([]*model.Shell, error)

	// Update applies mutate to a private copy of the stored shell and
	// installs the result. Returns the updated shell.
	Update(ctx context.Context, id string, mutate func(*model.Shell) error) (*model.Shell, error)

	// Delete removes the shell and everything it contains.
	Delete(ctx context.Context, id string) error

	// ExistsIdShort reports whether any stored shell carries the idShort.
	// Matching is case-insensitive, serving the uniqueness policy.
	ExistsIdShort(ctx context.Context, idShort string) (bool, error)
}
