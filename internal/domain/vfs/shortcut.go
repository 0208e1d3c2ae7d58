package vfs

import "strings"

// ShortcutExt marks a file whose content names an app to launch.
const ShortcutExt = ".lnk"

const execPrefix = "EXEC:"

// ShortcutTarget returns the app id a shortcut file points at.
func ShortcutTarget(n *Node) (string, bool) {
	if n == nil || n.IsDir() || !strings.HasSuffix(strings.ToLower(n.Name), ShortcutExt) {
		return "", false
	}
	if !strings.HasPrefix(n.Content, execPrefix) {
		return "", false
	}
	target := strings.TrimSpace(strings.TrimPrefix(n.Content, execPrefix))
	return target, target != ""
}

// NewShortcut builds a shortcut file that launches appID.
func NewShortcut(name, appID string) *Node {
	if !strings.HasSuffix(name, ShortcutExt) {
		name += ShortcutExt
	}
	return NewFile(name, execPrefix+appID)
}
