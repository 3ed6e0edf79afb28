package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	return isCharDevice(os.Stdout)
}

// StdinIsTTY returns true if stdin is a terminal. Prompts that read a
// reply need both ends interactive, not just stdout.
func StdinIsTTY() bool {
	return isCharDevice(os.Stdin)
}

// Interactive reports whether it is safe to stop and ask the user
// something.
func Interactive() bool {
	return IsTTY() && StdinIsTTY()
}

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// InitColor configures color output based on flags and terminal detection.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}
