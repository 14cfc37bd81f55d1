package review

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"reviewd/internal/logging"
)

// Selector discovers candidate files under a root path. Discovery order is
// deterministic: WalkDir visits directory entries lexicographically.
type Selector struct {
	extensions map[string]struct{}
	exclude    []string
	log        *zap.Logger
}

// NewSelector builds a selector for the given extension allow-list (entries
// like ".py") and exclude globs. Globs are matched against root-relative
// paths and base names.
func NewSelector(extensions, exclude []string, log *zap.Logger) *Selector {
	allow := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allow[strings.ToLower(ext)] = struct{}{}
	}
	return &Selector{
		extensions: allow,
		exclude:    exclude,
		log:        logging.OrNop(log),
	}
}

// Select returns the ordered candidate paths under root. A root that cannot
// be enumerated at all is the only fatal condition; unreadable subtrees are
// skipped with a warning.
func (s *Selector) Select(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", root, err)
	}

	if !info.IsDir() {
		if s.supported(root) && !s.excluded(filepath.Base(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && s.excludedDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !s.supported(path) || s.excluded(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("enumerating %s: %w", root, walkErr)
	}
	return paths, nil
}

func (s *Selector) supported(path string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// excluded matches a root-relative file path against the exclude globs. Each
// glob is tried against the relative path and the base name; a "**/" prefix
// matches at any directory depth.
func (s *Selector) excluded(rel string) bool {
	base := filepath.Base(rel)
	for _, pattern := range s.exclude {
		if matched, err := filepath.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
		if trimmed := strings.TrimPrefix(pattern, "**/"); trimmed != pattern {
			if matched, err := filepath.Match(trimmed, base); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// excludedDir prunes whole directories. A pattern like "vendor/*" drops the
// vendor tree itself so the walk never descends into it.
func (s *Selector) excludedDir(rel string) bool {
	if s.excluded(rel) {
		return true
	}
	base := filepath.Base(rel)
	for _, pattern := range s.exclude {
		trimmed := strings.TrimSuffix(pattern, "/*")
		if trimmed == pattern {
			continue
		}
		if matched, err := filepath.Match(trimmed, rel); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(trimmed, base); err == nil && matched {
			return true
		}
	}
	return false
}
