package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
)

// command runs with the session lock held and returns the lines to print.
type command func(s *Session, args []string) []Line

var commands = map[string]command{
	"help":     cmdHelp,
	"clear":    cmdClear,
	"whoami":   cmdWhoami,
	"date":     cmdDate,
	"pwd":      cmdPwd,
	"echo":     cmdEcho,
	"neofetch": cmdNeofetch,
	"ls":       cmdLs,
	"cd":       cmdCd,
	"cat":      cmdCat,
	"mkdir":    cmdMkdir,
	"touch":    cmdTouch,
	"rm":       cmdRm,
}

const helpText = "Core: ls, cd, pwd, clear, cat, mkdir, touch, rm, whoami, neofetch, date, echo\nAI: ai [query], ask [query]"

const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

func cmdHelp(*Session, []string) []Line {
	return []Line{output(helpText)}
}

func cmdClear(s *Session, _ []string) []Line {
	s.lines.Reset()
	return nil
}

func cmdWhoami(*Session, []string) []Line {
	return []Line{output("user")}
}

func cmdDate(s *Session, _ []string) []Line {
	return []Line{output(s.now().Format(dateLayout))}
}

func cmdPwd(s *Session, _ []string) []Line {
	return []Line{output(s.cwd)}
}

func cmdEcho(_ *Session, args []string) []Line {
	return []Line{output(strings.Join(args, " "))}
}

func cmdNeofetch(s *Session, _ []string) []Line {
	uptime := int(s.now().Sub(s.started).Minutes())
	return []Line{output(fmt.Sprintf(`
   .----.       OS: HybridOS Chimera x86_64
  /      \      Kernel: 6.5.0-hybrid
 |  (o)(o) |    Uptime: %d mins
  \  __  /     Shell: bash 5.2.15
   '----'       UI: macOS-Glass v2.4
                Taskbar: Windows-11-Fluent
                CPU: Virtual Gemini Pro
                Memory: 16GB / 64GB
                Cwd: %s
`, uptime, s.cwd))}
}

func cmdLs(s *Session, args []string) []Line {
	target, shown := s.cwd, s.cwd
	if len(args) > 0 {
		target, shown = vfs.Abs(s.cwd, args[0]), args[0]
	}

	node, err := s.fs.Resolve(target)
	if err != nil {
		return []Line{errorf("ls: %s: No such file or directory", shown)}
	}
	if !node.IsDir() {
		return []Line{output(node.Name)}
	}

	children := s.fs.ListChildren(target)
	if len(children) == 0 {
		return []Line{output("(empty directory)")}
	}
	names := make([]string, len(children))
	for i, child := range children {
		names[i] = child.Name
	}
	return []Line{output(strings.Join(names, "  "))}
}

func cmdCd(s *Session, args []string) []Line {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	next := vfs.Navigate(s.cwd, target)
	if !s.fs.IsDir(next) {
		return []Line{errorf("cd: %s: No such directory", target)}
	}
	s.cwd = next
	return nil
}

func cmdCat(s *Session, args []string) []Line {
	if len(args) == 0 {
		return []Line{errorf("cat: missing file operand")}
	}
	content, err := s.fs.ReadFile(vfs.Abs(s.cwd, args[0]))
	switch {
	case errors.Is(err, vfs.ErrIsDirectory):
		return []Line{errorf("cat: %s: Is a directory", args[0])}
	case err != nil:
		return []Line{errorf("cat: %s: No such file", args[0])}
	case content == "":
		return []Line{output("(empty file)")}
	}
	return []Line{output(content)}
}

func cmdMkdir(s *Session, args []string) []Line {
	if len(args) == 0 {
		return []Line{errorf("mkdir: missing operand")}
	}
	if err := s.create(args[0], func(name string) *vfs.Node { return vfs.NewDir(name) }); err != nil {
		return []Line{errorf("mkdir: %s: %s", args[0], describe(err))}
	}
	return []Line{output("Created directory: " + args[0])}
}

func cmdTouch(s *Session, args []string) []Line {
	if len(args) == 0 {
		return []Line{errorf("touch: missing file operand")}
	}
	if err := s.create(args[0], func(name string) *vfs.Node { return vfs.NewFile(name, "") }); err != nil {
		return []Line{errorf("touch: %s: %s", args[0], describe(err))}
	}
	return []Line{output("Created file: " + args[0])}
}

func cmdRm(s *Session, args []string) []Line {
	if len(args) == 0 {
		return []Line{errorf("rm: missing operand")}
	}
	err := s.fs.Remove(vfs.Abs(s.cwd, args[0]))
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return []Line{errorf("rm: %s: No such file or directory", args[0])}
	case err != nil:
		return []Line{errorf("rm: %s: %s", args[0], describe(err))}
	}
	return []Line{output("Removed: " + args[0])}
}

// create resolves arg against cwd and inserts the node build returns.
func (s *Session) create(arg string, build func(name string) *vfs.Node) error {
	dir, name := vfs.Parent(vfs.Abs(s.cwd, arg))
	if name == "" {
		return vfs.ErrInvalidName
	}
	return s.fs.CreateChild(dir, build(name))
}

func describe(err error) string {
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return "No such file or directory"
	case errors.Is(err, vfs.ErrNotDirectory):
		return "Not a directory"
	case errors.Is(err, vfs.ErrIsDirectory):
		return "Is a directory"
	case errors.Is(err, vfs.ErrInvalidName):
		return "Invalid name"
	case errors.Is(err, vfs.ErrInvalidPath):
		return "Invalid path"
	default:
		return err.Error()
	}
}
