// Package session saves and restores desktop workspaces.
//
// A session captures the window registry (records in order plus the
// active id) and a deep copy of the file system. Restoring replaces both
// and remounts the app views. Sessions live in memory only.
//
// Example Usage:
//
//	manager := session.NewManager(desktop, logger)
//	saved, err := manager.Save("Focus mode", "terminal and notes")
//	_, err = manager.Restore(saved.ID)
package session
