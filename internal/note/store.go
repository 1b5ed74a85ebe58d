// store.go maintains the set of link targets known under a notes root.
//
// The store backs wikilink resolution and autocomplete. It scans the root
// for markdown files, reads each file's frontmatter concurrently, and keeps
// a path-keyed snapshot that single-file upserts and removals (driven by the
// filesystem watcher) mutate incrementally between full scans.
package note

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// maxNoteFileBytes caps how large a file the scanner will read for
	// frontmatter. Larger files are indexed by name only.
	maxNoteFileBytes int64 = 1024 * 1024

	// maxResolveDistance is the highest edit distance Resolve accepts when
	// falling back to fuzzy matching.
	maxResolveDistance = 2

	dirPermission  = 0o755
	filePermission = 0o644
)

// Target identifies one note a wikilink can point at.
type Target struct {
	Path  string
	Name  string // filename without extension
	Title string
	Type  string
}

// DisplayTitle returns the title, falling back to the filename stem for
// notes without frontmatter.
func (t Target) DisplayTitle() string {
	if title := strings.TrimSpace(t.Title); title != "" {
		return title
	}
	return t.Name
}

// Store indexes the markdown files under a notes root. All methods are safe
// for concurrent use.
type Store struct {
	root string

	mu      sync.RWMutex
	targets map[string]Target
}

func NewStore(root string) *Store {
	return &Store{
		root:    root,
		targets: map[string]Target{},
	}
}

func (s *Store) Root() string {
	return s.root
}

// Scan walks the root and rebuilds the target set. Frontmatter reads run
// concurrently, one goroutine per file up to GOMAXPROCS. Files that cannot
// be read are indexed by filename alone; only a failed directory walk or a
// cancelled context fails the scan. The previous snapshot stays live until
// the new one is complete.
func (s *Store) Scan(ctx context.Context) error {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipManagedPath(d.Name()) && path != s.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk notes root %q: %w", s.root, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	next := make(map[string]Target, len(paths))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			target := s.loadTarget(path)
			mu.Lock()
			next[path] = target
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scan notes root %q: %w", s.root, err)
	}

	s.mu.Lock()
	s.targets = next
	s.mu.Unlock()
	return nil
}

// Upsert indexes a single path after a filesystem change. Paths outside the
// root, non-markdown files, and managed paths are ignored; a path that no
// longer exists is removed.
func (s *Store) Upsert(path string) {
	if !withinRoot(s.root, path) || hasManagedComponent(s.root, path) {
		return
	}
	if !strings.EqualFold(filepath.Ext(path), ".md") {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.Remove(path)
		return
	}
	target := s.loadTarget(path)
	s.mu.Lock()
	s.targets[path] = target
	s.mu.Unlock()
}

// Remove drops a path and, for directories, everything beneath it.
func (s *Store) Remove(path string) {
	prefix := path + string(os.PathSeparator)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.targets, path)
	for p := range s.targets {
		if strings.HasPrefix(p, prefix) {
			delete(s.targets, p)
		}
	}
}

// Targets returns the indexed notes sorted by path.
func (s *Store) Targets() []Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Target, 0, len(s.targets))
	for _, t := range s.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool {
		return strings.ToLower(out[a].Path) < strings.ToLower(out[b].Path)
	})
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.targets)
}

// Resolve maps a wikilink target to a note. Matching is case-insensitive
// and proceeds in three rounds: exact title, exact filename stem, then the
// nearest fuzzy match within maxResolveDistance edits. Ties go to the
// lexically first path so resolution is deterministic.
func (s *Store) Resolve(name string) (Target, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Target{}, false
	}
	candidates := s.Targets()

	for _, t := range candidates {
		if strings.ToLower(strings.TrimSpace(t.Title)) == key {
			return t, true
		}
	}
	for _, t := range candidates {
		if strings.ToLower(t.Name) == key {
			return t, true
		}
	}

	best := Target{}
	bestDist := maxResolveDistance + 1
	for _, t := range candidates {
		if d := targetDistance(t, key); d < bestDist {
			best = t
			bestDist = d
		}
	}
	if bestDist > maxResolveDistance {
		return Target{}, false
	}
	return best, true
}

func targetDistance(t Target, key string) int {
	d := levenshtein.ComputeDistance(strings.ToLower(strings.TrimSpace(t.Title)), key)
	if nd := levenshtein.ComputeDistance(strings.ToLower(t.Name), key); nd < d {
		d = nd
	}
	return d
}

// Match returns targets for an autocomplete prefix: prefix matches on title
// or stem first, substring matches second, near-misses within three edits
// last, each group ordered by path. An empty prefix returns everything.
func (s *Store) Match(prefix string) []Target {
	key := strings.ToLower(strings.TrimSpace(prefix))
	candidates := s.Targets()
	if key == "" {
		return candidates
	}

	type scored struct {
		target Target
		rank   int
		dist   int
	}
	matches := make([]scored, 0, len(candidates))
	for _, t := range candidates {
		title := strings.ToLower(strings.TrimSpace(t.Title))
		name := strings.ToLower(t.Name)
		switch {
		case strings.HasPrefix(title, key) || strings.HasPrefix(name, key):
			matches = append(matches, scored{t, 0, 0})
		case strings.Contains(title, key) || strings.Contains(name, key):
			matches = append(matches, scored{t, 1, 0})
		default:
			if d := targetDistance(t, key); d <= maxResolveDistance+1 {
				matches = append(matches, scored{t, 2, d})
			}
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].rank != matches[b].rank {
			return matches[a].rank < matches[b].rank
		}
		return matches[a].dist < matches[b].dist
	})

	out := make([]Target, len(matches))
	for i, m := range matches {
		out[i] = m.target
	}
	return out
}

// Create writes a new note for an unresolved wikilink target: a slugged
// filename under the root (or a type subdirectory), seeded with frontmatter
// carrying a fresh id. An existing file with that name is adopted rather
// than overwritten.
func (s *Store) Create(title, noteType string) (Target, error) {
	name := Slugify(title)
	if name == "" {
		return Target{}, fmt.Errorf("create note: empty title")
	}

	dir := s.root
	if noteType != "" {
		dir = filepath.Join(s.root, noteType)
	}
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return Target{}, fmt.Errorf("create note directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, name+".md")
	if _, err := os.Stat(path); err == nil {
		s.Upsert(path)
		return s.loadTarget(path), nil
	}

	meta := Metadata{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
		Type:  noteType,
	}
	content := ComposeFrontmatter(meta) + "\n# " + meta.Title + "\n"
	if err := os.WriteFile(path, []byte(content), filePermission); err != nil {
		return Target{}, fmt.Errorf("write note %q: %w", path, err)
	}

	target := Target{Path: path, Name: name, Title: meta.Title, Type: meta.Type}
	s.mu.Lock()
	s.targets[path] = target
	s.mu.Unlock()
	return target, nil
}

// Slugify turns a note title into a filename stem: lowercase, spaces to
// hyphens, everything outside [a-z0-9-] dropped.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_' || r == '\t':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *Store) loadTarget(path string) Target {
	target := Target{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxNoteFileBytes {
		return target
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return target
	}
	meta, body := ParseFrontmatter(string(content))
	target.Title = meta.Title
	if target.Title == "" {
		target.Title = firstHeading(body)
	}
	target.Type = meta.Type
	if target.Type == "" {
		target.Type = s.typeFromPath(path)
	}
	return target
}

// firstHeading returns the text of the first `# ` heading, the title
// fallback for notes without frontmatter.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}

// typeFromPath infers a note type from the immediate parent directory, the
// convention flint uses when frontmatter omits an explicit type. Notes
// sitting directly under the root have no type.
func (s *Store) typeFromPath(path string) string {
	parent := filepath.Dir(path)
	if parent == s.root {
		return ""
	}
	return strings.ToLower(filepath.Base(parent))
}

// skipManagedPath filters dotfiles and editor droppings out of scans.
func skipManagedPath(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

// hasManagedComponent reports whether any path segment between the root and
// the path is managed. Watcher events for files under hidden directories
// arrive by full path, so the base-name check alone is not enough.
func hasManagedComponent(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		if skipManagedPath(part) {
			return true
		}
	}
	return false
}

func withinRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
