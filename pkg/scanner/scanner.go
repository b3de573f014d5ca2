// Package scanner reconstructs the set of entity keys present in a
// generated output tree.
//
// Two layouts are recognized, both relative to the output root:
//
//	collection/identifier.ext
//	collection/category/identifier.ext
//
// The key is always built from the first segment and the file stem, so an
// entity moved between layouts keeps its key.
package scanner

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/logging"
)

// indexStem names collection landing pages, which are not entities.
const indexStem = "index"

// Scanner walks an output tree.
type Scanner struct {
	ext string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtension sets the entity file extension, including the dot.
func WithExtension(ext string) Option {
	return func(s *Scanner) {
		if ext != "" {
			s.ext = ext
		}
	}
}

// New creates a scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{ext: constants.DefaultFileExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extension returns the entity file extension.
func (s *Scanner) Extension() string { return s.ext }

// Scan returns the keys of every entity file under root. A missing or
// unreadable tree yields an empty set.
func (s *Scanner) Scan(ctx context.Context, root string) catalog.KeySet {
	logger := logging.FromContext(logging.WithStage(ctx, "scan"))
	keys := catalog.NewKeySet()

	if _, err := os.ReadDir(root); err != nil {
		logger.Debug().Err(err).Str("root", root).Msg("Output tree not readable, treating as empty")
		return keys
	}

	matches, err := doublestar.Glob(os.DirFS(root), "**/*"+s.ext,
		doublestar.WithFailOnIOErrors(), doublestar.WithFilesOnly())
	if err != nil {
		logger.Warn().Err(err).Str("root", root).Msg("Output tree scan failed, treating as empty")
		return catalog.NewKeySet()
	}

	for _, rel := range matches {
		if key, ok := s.KeyFor(rel); ok {
			keys.Add(key)
		}
	}

	logger.Debug().Int("entities", keys.Len()).Str("root", root).Msg("Scanned output tree")
	return keys
}

// KeyFor derives the entity key of a slash-separated path relative to the
// output root. It reports false for paths outside the known layouts.
func (s *Scanner) KeyFor(rel string) (catalog.Key, bool) {
	if !strings.HasSuffix(rel, s.ext) {
		return "", false
	}
	segments := strings.Split(rel, "/")
	if len(segments) < 2 || len(segments) > 3 {
		return "", false
	}
	stem := strings.TrimSuffix(path.Base(rel), s.ext)
	if stem == "" || stem == indexStem {
		return "", false
	}
	return catalog.NewKey(segments[0], stem), true
}
