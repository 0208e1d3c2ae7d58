package paths

// Top-level directories
const (
	Root = "/"
	Bin  = "/bin"
	Etc  = "/etc"
	Home = "/home/user"
)

// Home subdirectories
const (
	Desktop   = Home + "/Desktop"
	Documents = Home + "/Documents"
	Music     = Home + "/Music"
)

// System files
const (
	Hostname = Etc + "/hostname"
	Motd     = Etc + "/motd"
)

// StandardDirectories returns every directory a fresh desktop starts with.
func StandardDirectories() []string {
	return []string{
		Bin,
		Etc,
		Home,
		Desktop,
		Documents,
		Music,
	}
}
