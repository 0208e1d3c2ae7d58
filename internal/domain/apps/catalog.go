// Package apps holds the catalog of installed desktop applications: their
// display names, launcher categories, default window sizes and menu bar
// titles.
package apps

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ID names an application. The window registry keys records by it.
type ID string

const (
	Terminal   ID = "terminal"
	Files      ID = "files"
	Browser    ID = "browser"
	AI         ID = "ai"
	Notepad    ID = "notepad"
	Music      ID = "music"
	Calculator ID = "calculator"
	Store      ID = "store"
	Monitor    ID = "monitor"
	Settings   ID = "settings"
	Game       ID = "game"
	YouTube    ID = "youtube"
	TikTok     ID = "tiktok"
	Instagram  ID = "instagram"
	Facebook   ID = "facebook"
	Reddit     ID = "reddit"
	X          ID = "x"
	LinkedIn   ID = "linkedin"
)

// Category groups apps in the start menu.
type Category string

const (
	Productivity  Category = "productivity"
	Entertainment Category = "entertainment"
	System        Category = "system"
	Games         Category = "games"
)

// FallbackTitle is used for windows whose app is not in the catalog.
const FallbackTitle = "New Window"

// FinderName labels the menu bar when no window is active.
const FinderName = "Finder"

var ErrUnknownApp = errors.New("unknown app")

//go:embed catalog.toml
var catalogTOML []byte

// Info describes one installed app.
type Info struct {
	ID       ID       `toml:"id" json:"id"`
	Name     string   `toml:"name" json:"name"`
	Category Category `toml:"category" json:"category"`
	Width    int      `toml:"width" json:"width"`
	Height   int      `toml:"height" json:"height"`
	Social   bool     `toml:"social" json:"social"`
	Pinned   bool     `toml:"pinned" json:"pinned"`
	Menus    []string `toml:"menus" json:"menus"`
}

type catalogFile struct {
	Defaults struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"defaults"`
	Finder struct {
		Menus []string `toml:"menus"`
	} `toml:"finder"`
	Apps []Info `toml:"app"`
}

// Catalog is an immutable, ordered set of apps.
type Catalog struct {
	apps          []Info
	byID          map[ID]int
	finderMenus   []string
	defaultWidth  int
	defaultHeight int
}

// Default parses the embedded catalog. It panics on a malformed file since
// the file ships inside the binary.
func Default() *Catalog {
	c, err := Parse(catalogTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded app catalog: %v", err))
	}
	return c
}

// Parse builds a catalog from TOML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if f.Defaults.Width <= 0 || f.Defaults.Height <= 0 {
		return nil, fmt.Errorf("catalog defaults must set a positive width and height")
	}

	c := &Catalog{
		byID:          make(map[ID]int, len(f.Apps)),
		finderMenus:   f.Finder.Menus,
		defaultWidth:  f.Defaults.Width,
		defaultHeight: f.Defaults.Height,
	}
	for _, app := range f.Apps {
		if app.ID == "" || app.Name == "" {
			return nil, fmt.Errorf("catalog entry missing id or name: %+v", app)
		}
		if _, dup := c.byID[app.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", app.ID)
		}
		if app.Width <= 0 {
			app.Width = c.defaultWidth
		}
		if app.Height <= 0 {
			app.Height = c.defaultHeight
		}
		c.byID[app.ID] = len(c.apps)
		c.apps = append(c.apps, app)
	}
	return c, nil
}

// Lookup returns the app with the given id.
func (c *Catalog) Lookup(id ID) (Info, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Info{}, false
	}
	return clone(c.apps[i]), true
}

// Has reports whether id is installed.
func (c *Catalog) Has(id ID) bool {
	_, ok := c.byID[id]
	return ok
}

// Title returns the window title for id.
func (c *Catalog) Title(id ID) string {
	if info, ok := c.Lookup(id); ok {
		return info.Name
	}
	return FallbackTitle
}

// Size returns the default window size for id.
func (c *Catalog) Size(id ID) (width, height int) {
	if info, ok := c.Lookup(id); ok {
		return info.Width, info.Height
	}
	return c.defaultWidth, c.defaultHeight
}

// Menus returns the menu bar titles for id, or the Finder set for an empty
// or unknown id.
func (c *Catalog) Menus(id ID) []string {
	if info, ok := c.Lookup(id); ok && len(info.Menus) > 0 {
		return info.Menus
	}
	return append([]string(nil), c.finderMenus...)
}

// List returns every app in launcher order.
func (c *Catalog) List() []Info {
	out := make([]Info, 0, len(c.apps))
	for _, app := range c.apps {
		out = append(out, clone(app))
	}
	return out
}

// ByCategory returns apps in one category, in launcher order.
func (c *Catalog) ByCategory(cat Category) []Info {
	var out []Info
	for _, app := range c.apps {
		if app.Category == cat {
			out = append(out, clone(app))
		}
	}
	return out
}

// Pinned returns the dock apps, at most limit of them.
func (c *Catalog) Pinned(limit int) []Info {
	var out []Info
	for _, app := range c.apps {
		if app.Pinned {
			out = append(out, clone(app))
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Search returns apps whose name contains q, ignoring case.
func (c *Catalog) Search(q string) []Info {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	var out []Info
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), q) {
			out = append(out, clone(app))
		}
	}
	return out
}

func clone(info Info) Info {
	info.Menus = append([]string(nil), info.Menus...)
	return info
}
