package terminal

import (
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Device reads and writes the line discipline settings of a terminal.
type Device interface {
	GetAttr(attr *unix.Termios) error
	SetAttr(attr *unix.Termios) error
}

// tty is a Device backed by an open terminal file descriptor.
type tty struct {
	fd uintptr
}

// NewDevice returns a Device for fd. Settings are applied with TCSAFLUSH: pending output drains and
// unread input is discarded before the change takes effect.
func NewDevice(fd uintptr) Device {
	return &tty{fd: fd}
}

func (t *tty) GetAttr(attr *unix.Termios) error {
	if !term.IsTerminal(int(t.fd)) {
		return unix.ENOTTY
	}
	return termios.Tcgetattr(t.fd, attr)
}

func (t *tty) SetAttr(attr *unix.Termios) error {
	return termios.Tcsetattr(t.fd, termios.TCSAFLUSH, attr)
}
