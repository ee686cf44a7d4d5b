package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("corpus not found")
	ErrEmpty       = errors.New("corpus has no questions")
	ErrOutsideRoot = errors.New("corpus path outside content root")
)

// Loader reads question corpora referenced by roadmap topics. References
// are relative to the content root.
type Loader struct {
	rootDir string
	cache   Cache

	mu   sync.Mutex
	keys map[string]string // source path -> cache key of its last parse
}

// NewLoader creates a corpus loader rooted at rootDir. A nil cache keeps
// parsed corpora in memory.
func NewLoader(rootDir string, cache Cache) *Loader {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Loader{rootDir: rootDir, cache: cache, keys: make(map[string]string)}
}

// Root returns the content root directory.
func (l *Loader) Root() string {
	return l.rootDir
}

// CleanRef normalizes a topic reference path. Roadmap files refer to corpora
// relative to their own directory, so leading "../" segments are dropped.
func CleanRef(ref string) string {
	p := strings.TrimSpace(filepath.ToSlash(ref))
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return p
}

// Resolve maps a reference path to a file path inside the content root.
func (l *Loader) Resolve(ref string) (string, error) {
	clean := CleanRef(ref)
	if clean == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	local := filepath.FromSlash(clean)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
	}
	return filepath.Join(l.rootDir, local), nil
}

// Load reads, parses and caches the corpus at ref. A corpus that parses to
// zero records is returned together with ErrEmpty.
func (l *Loader) Load(ctx context.Context, ref string) (Corpus, error) {
	path, err := l.Resolve(ref)
	if err != nil {
		return Corpus{}, err
	}

	text, err := readSource(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Corpus{}, fmt.Errorf("%w: %s", ErrNotFound, CleanRef(ref))
		}
		return Corpus{}, err
	}

	key := Key(text)
	l.track(ctx, path, key)

	c, ok := l.cache.Get(ctx, key)
	if !ok {
		c = Parse(text)
		l.cache.Set(ctx, key, c)
		slog.Debug("corpus parsed",
			"path", CleanRef(ref),
			"records", c.Len(),
			"duplicates", len(c.Duplicates),
			"dropped", len(c.Dropped),
		)
	}

	if c.Len() == 0 {
		return c, fmt.Errorf("%w: %s", ErrEmpty, CleanRef(ref))
	}
	return c, nil
}

// track remembers the cache key for a source path and evicts the entry for
// its previous content when the file has changed.
func (l *Loader) track(ctx context.Context, path, key string) {
	l.mu.Lock()
	prev, ok := l.keys[path]
	l.keys[path] = key
	l.mu.Unlock()

	if !ok || prev == key {
		return
	}
	if e, ok := l.cache.(evicter); ok {
		e.Delete(ctx, prev)
	}
}

// readSource returns the corpus text at path. A directory, or a missing
// file with a sibling directory of the same stem (questions.md next to
// questions/), is consolidated from its per-question files.
func readSource(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return readQuestionDir(path)
	case err == nil:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading corpus: %w", err)
		}
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		dir := strings.TrimSuffix(path, filepath.Ext(path))
		if dir == path {
			return "", err
		}
		return readQuestionDir(dir)
	default:
		return "", fmt.Errorf("reading corpus: %w", err)
	}
}

func readQuestionDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || strings.EqualFold(name, "README.md") || IsExplanationFile(name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no question files in %s: %w", dir, fs.ErrNotExist)
	}
	slices.Sort(names)

	files := make([]SourceFile, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("reading question file: %w", err)
		}
		files = append(files, SourceFile{Name: name, Text: string(data)})
	}
	return Consolidate(files), nil
}
