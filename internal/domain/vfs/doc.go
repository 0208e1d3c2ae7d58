// Package vfs implements the in-memory file tree shared by the terminal
// and the file manager.
//
// The tree is rooted at a directory named "/". Paths are split on "/" and
// walked through child maps. A node is exactly one of a directory (which
// owns children) or a file (which owns content). Shortcut files carry an
// "EXEC:<app id>" payload as their content.
//
// Writes auto-vivify: CreateChild creates any missing directory along the
// parent path, so mkdir and touch never fail on a path that simply has not
// been listed yet. Reads are lenient: ListChildren returns an empty slice
// for missing paths and for files.
//
// All returned nodes are deep copies; callers never hold references into
// the live tree.
package vfs
