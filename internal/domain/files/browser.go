// Package files implements the file manager view over the shared file
// system: a current directory, breadcrumbs, favorites and the open action
// for double-clicked entries.
package files

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/paths"
)

// Crumb is one segment of the location bar.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Place is a sidebar shortcut.
type Place struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Listing is the full view state.
type Listing struct {
	Path        string      `json:"path"`
	Breadcrumbs []Crumb     `json:"breadcrumbs"`
	Favorites   []Place     `json:"favorites"`
	Locations   []Place     `json:"locations"`
	Entries     []vfs.Entry `json:"entries"`
}

var favorites = []Place{
	{Label: "Home", Path: paths.Home},
	{Label: "Desktop", Path: paths.Desktop},
	{Label: "Documents", Path: paths.Documents},
	{Label: "Music", Path: paths.Music},
}

var locations = []Place{
	{Label: "Hybrid Drive", Path: paths.Root},
}

// Browser is one file manager window.
type Browser struct {
	fs     *vfs.FS
	logger *logging.Logger

	mu   sync.RWMutex
	path string
}

// NewBrowser opens a browser at the home directory.
func NewBrowser(fs *vfs.FS, logger *logging.Logger) *Browser {
	return &Browser{
		fs:     fs,
		logger: logging.OrNop(logger).Named("files"),
		path:   vfs.HomeDir,
	}
}

// Path returns the current directory.
func (b *Browser) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Navigate moves to p, resolved against the current directory. The target
// is not checked; a missing directory lists as empty.
func (b *Browser) Navigate(p string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.path = vfs.Abs(b.path, p)
	return b.path
}

// Up moves to the parent directory.
func (b *Browser) Up() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.path, _ = vfs.Parent(b.path)
	return b.path
}

// Breadcrumbs returns the segments of the current path, starting at Root.
func (b *Browser) Breadcrumbs() []Crumb {
	segs := vfs.Split(b.Path())

	crumbs := make([]Crumb, 0, len(segs)+1)
	crumbs = append(crumbs, Crumb{Label: "Root", Path: "/"})
	for i, seg := range segs {
		crumbs = append(crumbs, Crumb{Label: seg, Path: vfs.Join(segs[:i+1]...)})
	}
	return crumbs
}

// Favorites returns the sidebar shortcuts with the current one marked.
func (b *Browser) Favorites() []Place {
	return mark(favorites, b.Path())
}

// Locations returns the sidebar drives.
func (b *Browser) Locations() []Place {
	return mark(locations, b.Path())
}

func mark(places []Place, current string) []Place {
	out := make([]Place, len(places))
	for i, p := range places {
		p.Active = p.Path == current
		out[i] = p
	}
	return out
}

// Entries lists the current directory, directories first.
func (b *Browser) Entries() []vfs.Entry {
	dir := b.Path()
	children := b.fs.ListChildren(dir)

	entries := make([]vfs.Entry, len(children))
	for i, child := range children {
		entries[i] = vfs.Describe(child, path.Join(dir, child.Name))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].Type == vfs.TypeDir, entries[j].Type == vfs.TypeDir
		if di != dj {
			return di
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Open opens the entry name in the current directory. Directories are
// entered directly; files yield an action for the desktop to carry out.
func (b *Browser) Open(name string) (Action, error) {
	dir := b.Path()
	target := path.Join(dir, name)

	node, err := b.fs.Resolve(target)
	if err != nil {
		return Action{}, fmt.Errorf("open %s: %w", name, err)
	}

	action := ActionFor(node, target)
	if action.Kind == ActionNavigate {
		b.mu.Lock()
		b.path = action.Path
		b.mu.Unlock()
	}

	b.logger.Debug("Opened entry",
		zap.String("path", target),
		zap.String("action", string(action.Kind)),
		zap.String("app_id", string(action.App)),
	)
	return action, nil
}

// Search finds entries below the current directory. A plain word matches
// any name containing it, ignoring case; anything with glob syntax is used
// as a doublestar pattern relative to the current directory.
func (b *Browser) Search(query string) ([]vfs.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []vfs.Entry{}, nil
	}
	if !strings.ContainsAny(query, "*?[{") {
		query = "**/*" + query + "*"
	}

	results, err := b.fs.FindFold(path.Join(b.Path(), query))
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []vfs.Entry{}
	}
	return results, nil
}

// Listing returns the complete view state.
func (b *Browser) Listing() Listing {
	return Listing{
		Path:        b.Path(),
		Breadcrumbs: b.Breadcrumbs(),
		Favorites:   b.Favorites(),
		Locations:   b.Locations(),
		Entries:     b.Entries(),
	}
}
