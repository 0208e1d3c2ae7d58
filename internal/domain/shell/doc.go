/*
Package shell holds the authoritative desktop state.

A Shell owns the window registry, the overlays, the toast queue and one
view per open window. Every user action goes through its methods, which
are serialized by a single mutex, so the shell behaves like the event loop
of a desktop session.

# Views

Each app id maps to a ViewFactory. Launching an app that has no open
window creates its view; closing the window closes the view. Apps without
a registered factory get a GenericView.

	s := shell.New(shell.Deps{Catalog: apps.Default(), FS: fs, ...})
	s.Launch(apps.Terminal, shell.LaunchOptions{})
	term, _ := s.Terminal()
	term.Session().Exec("ls")

# Events

Subscribers receive an EventDesktop snapshot after each mutation, plus
view-specific events such as late terminal output.
*/
package shell
