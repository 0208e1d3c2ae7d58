package files

import (
	"strings"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
)

// ActionKind says what opening a node does.
type ActionKind string

const (
	ActionNone     ActionKind = "none"
	ActionNavigate ActionKind = "navigate"
	ActionLaunch   ActionKind = "launch"
)

// Action is the result of opening a node. For ActionLaunch, Content is
// passed to the app when HasContent is set.
type Action struct {
	Kind       ActionKind `json:"kind"`
	Path       string     `json:"path,omitempty"`
	App        apps.ID    `json:"app_id,omitempty"`
	Content    string     `json:"content,omitempty"`
	HasContent bool       `json:"has_content,omitempty"`
}

// ActionFor decides how to open node, which lives at p. Text documents
// open in the notepad with their content; shortcuts launch their target.
func ActionFor(node *vfs.Node, p string) Action {
	if node == nil {
		return Action{Kind: ActionNone}
	}
	if node.IsDir() {
		return Action{Kind: ActionNavigate, Path: vfs.Clean(p)}
	}

	if strings.HasSuffix(node.Name, ".txt") || strings.Contains(node.Name, "welcome") {
		return Action{Kind: ActionLaunch, App: apps.Notepad, Content: node.Content, HasContent: true}
	}
	if target, ok := vfs.ShortcutTarget(node); ok {
		return Action{Kind: ActionLaunch, App: apps.ID(target)}
	}
	return Action{Kind: ActionNone}
}
