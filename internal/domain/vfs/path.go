package vfs

import (
	"strings"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/paths"
)

// HomeDir is where shells and the file manager start.
const HomeDir = paths.Home

// Split returns the non-empty segments of p.
func Split(p string) []string {
	parts := strings.Split(p, "/")
	segs := parts[:0]
	for _, s := range parts {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Join builds an absolute path from segments.
func Join(segs ...string) string {
	return "/" + strings.Join(segs, "/")
}

// Clean normalizes p into an absolute path, resolving "." and ".." without
// ever climbing above the root.
func Clean(p string) string {
	var out []string
	for _, seg := range Split(p) {
		switch seg {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return Join(out...)
}

// Abs resolves p against cwd. Absolute paths ignore cwd.
func Abs(cwd, p string) string {
	if strings.HasPrefix(p, "/") {
		return Clean(p)
	}
	return Clean(cwd + "/" + p)
}

// Navigate computes the directory a "cd target" would move to from cwd.
// An empty target goes home, ".." pops one segment, a leading slash is
// absolute and anything else is appended to cwd. Whether the result exists
// is for the caller to check.
func Navigate(cwd, target string) string {
	switch {
	case target == "" || target == "~":
		return HomeDir
	case target == "..":
		segs := Split(cwd)
		if len(segs) == 0 {
			return "/"
		}
		return Join(segs[:len(segs)-1]...)
	default:
		return Abs(cwd, target)
	}
}

// Parent returns the directory part and the base name of p.
func Parent(p string) (string, string) {
	segs := Split(Clean(p))
	if len(segs) == 0 {
		return "/", ""
	}
	return Join(segs[:len(segs)-1]...), segs[len(segs)-1]
}
