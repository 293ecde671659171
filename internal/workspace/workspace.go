// Package workspace manages the temporary directory owning all files
// used during one installation run, and the lock that keeps concurrent
// runs from clobbering each other.
//
// The workspace is the only resource the installer must release on
// every exit path. Cleanup is idempotent so the orchestrator can defer
// it unconditionally and also call it from a signal handler.
package workspace

import (
	"fmt"
	"os"
	"sync"
)

// Workspace is a uniquely named temporary directory.
type Workspace struct {
	root string

	mu      sync.Mutex
	removed bool
}

// New creates a fresh workspace under the system temp directory.
func New() (*Workspace, error) {
	root, err := os.MkdirTemp("", "getassay-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Cleanup removes the workspace and everything in it. Safe to call more
// than once and from a signal handler.
func (w *Workspace) Cleanup() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.removed {
		return nil
	}
	w.removed = true

	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
