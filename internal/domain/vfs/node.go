package vfs

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("no such file or directory")
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
	ErrInvalidName  = errors.New("invalid node name")
	ErrInvalidPath  = errors.New("invalid path")
)

// NodeType distinguishes directories from files.
type NodeType string

const (
	TypeDir  NodeType = "dir"
	TypeFile NodeType = "file"
)

// Node is one entry of the tree.
type Node struct {
	Type      NodeType         `json:"type" yaml:"type"`
	Name      string           `json:"name" yaml:"name"`
	Children  map[string]*Node `json:"children,omitempty" yaml:"-"`
	Content   string           `json:"content,omitempty" yaml:"content"`
	CreatedAt time.Time        `json:"created_at" yaml:"-"`
}

// NewDir returns an empty directory node.
func NewDir(name string) *Node {
	return &Node{Type: TypeDir, Name: name, Children: map[string]*Node{}}
}

// NewFile returns a file node with the given content.
func NewFile(name, content string) *Node {
	return &Node{Type: TypeFile, Name: name, Content: content}
}

func (n *Node) IsDir() bool {
	return n != nil && n.Type == TypeDir
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Type:      n.Type,
		Name:      n.Name,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
	if n.Type == TypeDir {
		c.Children = make(map[string]*Node, len(n.Children))
		for name, child := range n.Children {
			c.Children[name] = child.Clone()
		}
	}
	return c
}

// normalize enforces the dir/file split on a caller supplied node: files
// lose children, directories lose content and always get a child map.
func (n *Node) normalize(now time.Time) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	switch n.Type {
	case TypeDir:
		n.Content = ""
		if n.Children == nil {
			n.Children = map[string]*Node{}
		}
		for _, child := range n.Children {
			child.normalize(now)
		}
	default:
		n.Type = TypeFile
		n.Children = nil
	}
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '/' || name[i] == 0 {
			return false
		}
	}
	return true
}
