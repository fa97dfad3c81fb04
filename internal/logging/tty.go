// ABOUTME: Terminal detection for the console logger.
// ABOUTME: Colour is only used when the writer is a terminal.

package logging

import "github.com/mattn/go-isatty"

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
