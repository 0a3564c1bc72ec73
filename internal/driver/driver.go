package driver

import (
	"fmt"

	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
)

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Prober discovers the window size once at startup.
type Prober interface {
	Probe() (rows int, cols int, err error)
}

// Driver alternates a full redraw with a single key read until a key asks it to quit.
type Driver struct {
	screen  common.Renderer
	keys    common.KeyReader
	prober  Prober
	keymap  Keymap
	log     *log.CoreLogger
	state   State
	rows    int
	cols    int
	renders int
}

func New(screen common.Renderer, keys common.KeyReader, prober Prober, keymap Keymap, l *log.CoreLogger) *Driver {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	if l == nil {
		l = log.GetDefaultLogger()
	}
	return &Driver{
		screen: screen,
		keys:   keys,
		prober: prober,
		keymap: keymap,
		log:    l,
		state:  Running,
	}
}

// Run probes the geometry and then loops until Quit. It returns nil on Quit and the first error
// otherwise; either way the driver is Terminated afterwards.
func (d *Driver) Run() error {
	if d.state == Terminated {
		return nil
	}

	rows, cols, err := d.prober.Probe()
	if err != nil {
		d.state = Terminated
		return err
	}
	d.rows, d.cols = rows, cols
	d.log.Infof("Editor running on %d rows, %d columns", rows, cols)

	for d.state == Running {
		d.screen.Render(d.rows)
		d.renders++

		k, err := d.keys.ReadKey()
		if err != nil {
			d.state = Terminated
			return err
		}
		d.Dispatch(k)
	}
	return nil
}

// Dispatch interprets one key. Keys without a binding do nothing.
func (d *Driver) Dispatch(k byte) {
	if d.state == Terminated {
		return
	}

	switch cmd := d.keymap.Lookup(k); cmd {
	case Quit:
		d.screen.Clear()
		d.state = Terminated
		d.log.Infof("Quit")
	case None:
		d.log.Debugf("Unbound key 0x%02x", k)
	default:
		d.log.Warnf("Key 0x%02x bound to unhandled command %v", k, cmd)
	}
}

func (d *Driver) State() State {
	return d.state
}

// Size returns the geometry probed by Run.
func (d *Driver) Size() (rows int, cols int) {
	return d.rows, d.cols
}

// Renders returns the number of redraws issued so far.
func (d *Driver) Renders() int {
	return d.renders
}
