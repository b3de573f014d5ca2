// Package lifecycle removes output files for entities that left the catalog
// and prunes the directories their removal leaves empty.
package lifecycle

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
	"github.com/agentstation/metricdocs/pkg/reconciler"
)

// Manager owns one output tree.
type Manager struct {
	root   string
	ext    string
	remove func(path string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithExtension sets the entity file extension, including the dot.
func WithExtension(ext string) Option {
	return func(m *Manager) {
		if ext != "" {
			m.ext = ext
		}
	}
}

// WithRemoveFunc replaces the function used to delete files and
// directories. Defaults to os.Remove.
func WithRemoveFunc(fn func(path string) error) Option {
	return func(m *Manager) {
		if fn != nil {
			m.remove = fn
		}
	}
}

// New creates a manager for the tree at root.
func New(root string, opts ...Option) *Manager {
	m := &Manager{root: root, ext: constants.DefaultFileExtension, remove: os.Remove}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result lists what was removed. Paths are slash-separated and relative to
// the output root.
type Result struct {
	RemovedFiles []string
	RemovedDirs  []string

	// Errors are the per-path failures that were skipped.
	Errors []error
}

// ReconcileOutput deletes the files of keys in existing that are absent
// from current, then prunes empty directories. Failures on single paths
// are logged and collected, never returned.
func (m *Manager) ReconcileOutput(ctx context.Context, existing, current catalog.KeySet) *Result {
	ctx = logging.WithStage(ctx, "lifecycle")
	logger := logging.FromContext(ctx)

	result := &Result{RemovedFiles: []string{}, RemovedDirs: []string{}}
	if _, err := os.Stat(m.root); err != nil {
		logger.Debug().Err(err).Str("root", m.root).Msg("Output tree missing, nothing to reconcile")
		return result
	}

	for _, key := range reconciler.Diff(existing, current).Removed {
		m.removeEntity(logger, key, result)
	}
	m.Prune(ctx, result)

	logger.Info().
		Int("files", len(result.RemovedFiles)).
		Int("dirs", len(result.RemovedDirs)).
		Int("errors", len(result.Errors)).
		Msg("Reconciled output tree")
	return result
}

// removeEntity deletes the backing file of key. The direct layout is tried
// first; legacy files one directory deeper are the fallback.
func (m *Manager) removeEntity(logger *zerolog.Logger, key catalog.Key, result *Result) {
	collection, id := key.Split()
	name := id + m.ext

	direct := filepath.Join(m.root, collection, name)
	if isFile(direct) {
		m.removeFile(logger, direct, result)
		return
	}

	entries, err := os.ReadDir(filepath.Join(m.root, collection))
	if err != nil {
		logger.Debug().Str("entity", key.String()).Msg("Entity file already gone")
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		legacy := filepath.Join(m.root, collection, entry.Name(), name)
		if isFile(legacy) {
			m.removeFile(logger, legacy, result)
		}
	}
}

func (m *Manager) removeFile(logger *zerolog.Logger, path string, result *Result) {
	rel := m.rel(path)
	if err := m.remove(path); err != nil {
		err = errors.WrapIO("delete", path, err)
		logger.Warn().Err(err).Str("path", rel).Msg("Failed to remove file")
		result.Errors = append(result.Errors, err)
		return
	}
	logger.Debug().Str("path", rel).Msg("Removed file")
	result.RemovedFiles = append(result.RemovedFiles, rel)
}

// Prune removes every empty directory below the root in one post-order
// pass. A directory emptied by pruning its children is removed on the way
// back up. The root itself is never removed.
func (m *Manager) Prune(ctx context.Context, result *Result) {
	m.prune(logging.FromContext(ctx), m.root, result)
}

func (m *Manager) prune(logger *zerolog.Logger, dir string, result *Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		err = errors.WrapIO("read", dir, err)
		logger.Warn().Err(err).Str("path", m.rel(dir)).Msg("Failed to read directory")
		result.Errors = append(result.Errors, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			m.prune(logger, filepath.Join(dir, entry.Name()), result)
		}
	}

	if dir == m.root {
		return
	}
	// Re-read: children may have been removed above.
	entries, err = os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := m.remove(dir); err != nil {
		err = errors.WrapIO("delete", dir, err)
		logger.Warn().Err(err).Str("path", m.rel(dir)).Msg("Failed to remove directory")
		result.Errors = append(result.Errors, err)
		return
	}
	logger.Debug().Str("path", m.rel(dir)).Msg("Removed empty directory")
	result.RemovedDirs = append(result.RemovedDirs, m.rel(dir))
}

func (m *Manager) rel(path string) string {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
