// Package clipboard copies lookup results to the system clipboard by piping
// them to a platform copy command.
package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no copy command is installed.
var ErrUnavailable = errors.New("no clipboard command available")

// command is a copy program and its arguments.
type command []string

// candidates returns the copy commands to try for goos, in order.
func candidates(goos string, wayland bool) []command {
	switch goos {
	case "darwin":
		return []command{{"pbcopy"}}
	case "windows":
		return []command{{"clip"}}
	default:
		cmds := []command{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
		if wayland {
			cmds = append([]command{{"wl-copy"}}, cmds...)
		}
		return cmds
	}
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func find() (command, bool) {
	for _, c := range candidates(runtime.GOOS, os.Getenv("WAYLAND_DISPLAY") != "") {
		if _, err := lookPath(c[0]); err == nil {
			return c, true
		}
	}
	return nil, false
}

// Write copies text to the system clipboard.
func Write(text string) error {
	c, ok := find()
	if !ok {
		return ErrUnavailable
	}
	cmd := exec.Command(c[0], c[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available reports whether a copy command is installed.
func Available() bool {
	_, ok := find()
	return ok
}
