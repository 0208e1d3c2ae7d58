package vfs

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
)

//go:embed seed.yaml
var seedYAML []byte

type seedEntry struct {
	Name     string      `yaml:"name"`
	Type     NodeType    `yaml:"type"`
	Content  string      `yaml:"content"`
	Children []seedEntry `yaml:"children"`
}

// Seed builds the default tree, stamping every node with now.
func Seed(now time.Time) (*Node, error) {
	return ParseSeed(seedYAML, now)
}

// ParseSeed builds a tree from a YAML list of top-level entries.
func ParseSeed(data []byte, now time.Time) (*Node, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	root := NewDir("/")
	root.CreatedAt = now
	if err := attach(root, entries, now); err != nil {
		return nil, err
	}
	return root, nil
}

func attach(parent *Node, entries []seedEntry, now time.Time) error {
	for _, e := range entries {
		if !validName(e.Name) {
			return fmt.Errorf("seed entry %q: %w", e.Name, ErrInvalidName)
		}
		var n *Node
		switch e.Type {
		case TypeDir:
			n = NewDir(e.Name)
			if err := attach(n, e.Children, now); err != nil {
				return err
			}
		case TypeFile:
			if len(e.Children) > 0 {
				return fmt.Errorf("seed entry %q: file with children: %w", e.Name, ErrNotDirectory)
			}
			n = NewFile(e.Name, e.Content)
		default:
			return fmt.Errorf("seed entry %q: unknown type %q", e.Name, e.Type)
		}
		n.CreatedAt = now
		parent.Children[e.Name] = n
	}
	return nil
}

// NewSeeded returns a file system holding the default tree.
func NewSeeded() (*FS, error) {
	root, err := Seed(time.Now())
	if err != nil {
		return nil, err
	}
	return New(root), nil
}
