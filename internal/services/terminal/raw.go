package terminal

import (
	"time"

	"golang.org/x/sys/unix"
)

const (
	DefaultIdleTimeout = 100 * time.Millisecond

	minVTime = 1
	maxVTime = 255
)

// MakeRaw returns a copy of base with the editor's input discipline applied:
// bytes arrive one at a time, unechoed and untranslated, and a read returns after
// idle has passed with nothing typed.
func MakeRaw(base unix.Termios, idle time.Duration) unix.Termios {
	raw := base

	// Break condition | Ctrl-M | Parity checking | Strip 8th bit | Ctrl-S Ctrl-Q
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	// Echo | Canonical mode | Ctrl-V | Ctrl-C Ctrl-Z
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG

	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = VTime(idle)
	return raw
}

// VTime converts an idle timeout into tenths of a second, clamped to what VTIME can hold.
func VTime(idle time.Duration) uint8 {
	ds := (idle + 50*time.Millisecond) / (100 * time.Millisecond)
	switch {
	case ds < minVTime:
		return minVTime
	case ds > maxVTime:
		return maxVTime
	default:
		return uint8(ds)
	}
}
