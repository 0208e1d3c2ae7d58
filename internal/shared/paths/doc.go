// Package paths names the standard locations of the desktop file system.
//
// # Directory Structure
//
//	/
//	├── bin/
//	├── etc/
//	│   ├── hostname
//	│   └── motd
//	└── home/
//	    └── user/        (shell and file manager start here)
//	        ├── Desktop/ (icons, including .lnk shortcuts)
//	        ├── Documents/
//	        └── Music/
//
// The seed tree and the file manager favorites are built from these
// constants.
package paths
