package ports

import "os/exec"

// PlayerOpener defines the interface for previewing an asset in an external player
type PlayerOpener interface {
	// Play plays the file at path and waits for the player to exit
	Play(path string) error

	// Command returns an exec.Cmd for playing a file.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
