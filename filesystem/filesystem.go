// Package filesystem routes file access through afero so tests can run on memory.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

func set(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// SetOsFs switches to the real filesystem.
func SetOsFs() {
	set(afero.NewOsFs())
}

// SetMemMapFs switches to an empty in-memory filesystem.
func SetMemMapFs() {
	set(afero.NewMemMapFs())
}
