// Package promptconfirm asks an interactive yes/no question before an
// overwrite, the way the teacher's client CLI drives every user choice
// through promptui rather than raw stdin parsing.
package promptconfirm

import (
	"os"

	pui "github.com/manifoldco/promptui"
	"golang.org/x/sys/unix"
)

// ioctlGetTermios is the get-terminal-attributes ioctl request (Linux
// ABI) from golang.org/x/sys/unix, the package fsort's mmap primitive
// already depends on.
const ioctlGetTermios = unix.TCGETS

// Overwrite asks the user to confirm overwriting an existing path. It
// is skipped (returns true) when stdin is not a terminal, so scripted
// and test runs never block on a prompt.
func Overwrite(path string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return true, nil
	}

	prompt := pui.Prompt{
		Label:     path + " already exists. Overwrite",
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		// promptui returns an error for both "no" and ctrl-c; either
		// way the caller should not overwrite.
		return false, nil
	}
	return true, nil
}

// isTerminal reports whether f is an actual TTY rather than just any
// character-special file — /dev/null and /dev/zero are char devices
// too, and a stdin redirected from either (common in scripted,
// non-interactive runs) must not be mistaken for a controlling
// terminal. unix.IoctlGetTermios succeeds only against a real tty.
func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlGetTermios)
	return err == nil
}
