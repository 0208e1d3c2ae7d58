package vfs

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
)

// Entry describes a node for listings and search results.
type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Type      NodeType  `json:"type"`
	Size      int       `json:"size"`
	MIME      string    `json:"mime"`
	CreatedAt time.Time `json:"created_at"`
}

// MutationFunc observes successful writes, e.g. for metrics.
type MutationFunc func(op, path string)

// FS is a concurrency-safe in-memory tree.
type FS struct {
	mu       sync.RWMutex
	root     *Node
	now      func() time.Time
	onMutate MutationFunc
}

// New wraps root, which must be a directory. A nil root starts empty.
func New(root *Node) *FS {
	fs := &FS{now: time.Now}
	if root == nil {
		root = NewDir("/")
	}
	root = root.Clone()
	root.Name = "/"
	root.Type = TypeDir
	root.normalize(fs.now())
	fs.root = root
	return fs
}

// WithClock overrides the timestamp source for new nodes.
func (fs *FS) WithClock(now func() time.Time) *FS {
	fs.now = now
	return fs
}

// OnMutate registers an observer for writes.
func (fs *FS) OnMutate(fn MutationFunc) *FS {
	fs.onMutate = fn
	return fs
}

// lookup walks segs from the root. Must be called with mu held.
func (fs *FS) lookup(segs []string) (*Node, error) {
	current := fs.root
	for _, seg := range segs {
		if !current.IsDir() {
			return nil, ErrNotFound
		}
		child, ok := current.Children[seg]
		if !ok {
			return nil, ErrNotFound
		}
		current = child
	}
	return current, nil
}

// Resolve returns a copy of the node at p.
func (fs *FS) Resolve(p string) (*Node, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, err := fs.lookup(Split(Clean(p)))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", p, err)
	}
	return node.Clone(), nil
}

// Exists reports whether p resolves.
func (fs *FS) Exists(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := fs.lookup(Split(Clean(p)))
	return err == nil
}

// IsDir reports whether p resolves to a directory.
func (fs *FS) IsDir(p string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, err := fs.lookup(Split(Clean(p)))
	return err == nil && node.IsDir()
}

// ListChildren returns copies of the children of p sorted by name. Missing
// paths and files list as empty.
func (fs *FS) ListChildren(p string) []*Node {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, err := fs.lookup(Split(Clean(p)))
	if err != nil || !node.IsDir() {
		return []*Node{}
	}

	out := make([]*Node, 0, len(node.Children))
	for _, child := range node.Children {
		out = append(out, child.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CreateChild inserts a copy of node under parentPath, creating missing
// directories along the way and replacing any sibling with the same name.
// A zero CreatedAt on the copy is stamped with the FS clock, so Resolve
// returns a node equal to the inserted one only when the caller set the
// timestamp. The caller's node is never modified.
func (fs *FS) CreateChild(parentPath string, node *Node) error {
	if node == nil || !validName(node.Name) {
		return ErrInvalidName
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	now := fs.now()
	current := fs.root
	for _, seg := range Split(Clean(parentPath)) {
		child, ok := current.Children[seg]
		if !ok {
			child = NewDir(seg)
			child.CreatedAt = now
			current.Children[seg] = child
		} else if !child.IsDir() {
			return fmt.Errorf("create %s in %s: %w", node.Name, parentPath, ErrNotDirectory)
		}
		current = child
	}

	inserted := node.Clone()
	inserted.normalize(now)
	current.Children[inserted.Name] = inserted

	fs.notify("create", path.Join(Clean(parentPath), inserted.Name))
	return nil
}

// ReadFile returns the content of the file at p.
func (fs *FS) ReadFile(p string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, err := fs.lookup(Split(Clean(p)))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	if node.IsDir() {
		return "", fmt.Errorf("read %s: %w", p, ErrIsDirectory)
	}
	return node.Content, nil
}

// Remove deletes the node at p and its subtree. The root cannot be removed.
func (fs *FS) Remove(p string) error {
	dir, name := Parent(p)
	if name == "" {
		return fmt.Errorf("remove %s: %w", p, ErrInvalidPath)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, err := fs.lookup(Split(dir))
	if err != nil || !parent.IsDir() {
		return fmt.Errorf("remove %s: %w", p, ErrNotFound)
	}
	if _, ok := parent.Children[name]; !ok {
		return fmt.Errorf("remove %s: %w", p, ErrNotFound)
	}
	delete(parent.Children, name)

	fs.notify("remove", Clean(p))
	return nil
}

// Stat describes the node at p.
func (fs *FS) Stat(p string) (Entry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	clean := Clean(p)
	node, err := fs.lookup(Split(clean))
	if err != nil {
		return Entry{}, fmt.Errorf("stat %s: %w", p, err)
	}
	return describe(node, clean), nil
}

// Snapshot returns a deep copy of the whole tree.
func (fs *FS) Snapshot() *Node {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.root.Clone()
}

// Replace swaps in a new tree, as when a saved workspace is restored.
func (fs *FS) Replace(root *Node) error {
	if !root.IsDir() {
		return fmt.Errorf("replace root: %w", ErrNotDirectory)
	}

	next := root.Clone()
	next.Name = "/"

	fs.mu.Lock()
	next.normalize(fs.now())
	fs.root = next
	fs.mu.Unlock()

	fs.notify("replace", "/")
	return nil
}

// Find returns entries whose absolute path matches a doublestar pattern
// such as "**/*.txt" or "/home/user/**". Results are sorted by path.
func (fs *FS) Find(pattern string) ([]Entry, error) {
	return fs.find(pattern, false)
}

// FindFold is Find with case-insensitive matching.
func (fs *FS) FindFold(pattern string) ([]Entry, error) {
	return fs.find(pattern, true)
}

func (fs *FS) find(pattern string, fold bool) ([]Entry, error) {
	pattern = strings.TrimPrefix(pattern, "/")
	if fold {
		pattern = strings.ToLower(pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("find %q: %w", pattern, doublestar.ErrBadPattern)
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var out []Entry
	var walk func(n *Node, segs []string)
	walk = func(n *Node, segs []string) {
		for name, child := range n.Children {
			childSegs := append(segs[:len(segs):len(segs)], name)
			rel := strings.Join(childSegs, "/")
			if fold {
				rel = strings.ToLower(rel)
			}
			if ok, _ := doublestar.Match(pattern, rel); ok {
				out = append(out, describe(child, Join(childSegs...)))
			}
			if child.IsDir() {
				walk(child, childSegs)
			}
		}
	}
	walk(fs.root, nil)

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (fs *FS) notify(op, p string) {
	if fs.onMutate != nil {
		fs.onMutate(op, p)
	}
}

// Describe builds an Entry for a node that lives at p.
func Describe(n *Node, p string) Entry {
	return describe(n, Clean(p))
}

func describe(n *Node, p string) Entry {
	e := Entry{
		Name:      n.Name,
		Path:      p,
		Type:      n.Type,
		CreatedAt: n.CreatedAt,
	}
	if n.IsDir() {
		e.MIME = "inode/directory"
		return e
	}
	e.Size = len(n.Content)
	e.MIME = detectMIME(n)
	return e
}

// detectMIME sniffs the content, with an override for desktop shortcuts
// whose payload is plain text.
func detectMIME(n *Node) string {
	if strings.HasSuffix(strings.ToLower(n.Name), ShortcutExt) {
		return "application/x-ms-shortcut"
	}
	return mimetype.Detect([]byte(n.Content)).String()
}
