/*
Package terminal implements the desktop's simulated shell.

A Session owns a working directory inside the shared in-memory file system
and a bounded scrollback of typed lines. Commands run synchronously except
"ai"/"ask", which query the assistant in a goroutine; while that request is
in flight the session rejects input with ErrBusy, and a session closed
before the reply arrives drops it.

# Commands

	help, clear, whoami, date, pwd, echo, neofetch
	ls [path], cd [path], cat <path>, mkdir <name>, touch <name>, rm <path>
	ai <question>, ask <question>
*/
package terminal
