package player

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fonoteca/internal/ports"
)

// Opener implements ports.PlayerOpener
type Opener struct {
	command  string
	lookPath func(string) (string, error)
}

// Ensure Opener implements ports.PlayerOpener
var _ ports.PlayerOpener = (*Opener)(nil)

// fallbacks are tried in order when no player is configured
var fallbacks = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "error"},
	{"afplay"},
	{"paplay"},
	{"xdg-open"},
	{"open"},
}

// NewOpener creates a player opener. command is a player command line such
// as "mpv --no-video"; when empty the first installed fallback is used.
func NewOpener(command string) *Opener {
	return &Opener{command: strings.TrimSpace(command), lookPath: exec.LookPath}
}

// Play plays a file and waits for the player to exit
func (o *Opener) Play(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for playing a file in the player
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot play %s: %w", path, err)
	}

	argv := o.findPlayer()
	if argv == nil {
		return nil, fmt.Errorf("no audio player found: set $FONOTECA_PLAYER or player in config")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findPlayer returns the player command line to use
func (o *Opener) findPlayer() []string {
	if o.command != "" {
		return strings.Fields(o.command)
	}

	for _, argv := range fallbacks {
		if path, err := o.lookPath(argv[0]); err == nil {
			return append([]string{path}, argv[1:]...)
		}
	}

	return nil
}
