package storage

import (
	"log/slog"
	"os"
)

// Cleanup collects paths created during one request so every exit path
// can release them with a single call. Deletion is best-effort: failures
// are logged and swallowed, a leaked file never changes the response.
type Cleanup struct {
	paths []string
}

// Add registers a path for later removal. Paths are registered at
// creation time, not when an error is discovered.
func (c *Cleanup) Add(path string) {
	c.paths = append(c.paths, path)
}

// Forget drops a path from the list, used when a file is meant to
// outlive the request (generated audio).
func (c *Cleanup) Forget(path string) {
	for i, p := range c.paths {
		if p == path {
			c.paths = append(c.paths[:i], c.paths[i+1:]...)
			return
		}
	}
}

// Run removes every registered path and resets the list.
func (c *Cleanup) Run() {
	for _, path := range c.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("cleanup failed", "path", path, "error", err)
		}
	}
	c.paths = nil
}
