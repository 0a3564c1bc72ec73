package driver

import (
	"fmt"

	"github.td.teradata.com/sandbox/jot/internal/services/keyboard"
)

// Command is what a key asks the editor to do.
type Command int

const (
	// None is the command for every unbound key.
	None Command = iota
	Quit
)

func (c Command) String() string {
	switch c {
	case None:
		return "none"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Keymap binds raw key bytes to commands.
type Keymap map[byte]Command

// NewKeymap binds Ctrl+quit to Quit.
func NewKeymap(quit byte) Keymap {
	return Keymap{keyboard.CtrlKey(quit): Quit}
}

func DefaultKeymap() Keymap {
	return Keymap{keyboard.CtrlQ: Quit}
}

func (k Keymap) Lookup(b byte) Command {
	return k[b]
}
