//go:build !windows

package term

import "os"

// EnableVirtualTerminal is a no-op: terminal emulators handle ANSI sequences.
func EnableVirtualTerminal(f *os.File) error {
	return nil
}
