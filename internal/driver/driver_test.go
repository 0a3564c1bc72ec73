package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/keyboard"
)

// events is shared by the fakes so tests can assert ordering across them.
type events struct {
	list []string
}

func (e *events) add(s string) { e.list = append(e.list, s) }

type fakeScreen struct {
	ev      *events
	renders []int
}

func (f *fakeScreen) Render(rows int) {
	f.renders = append(f.renders, rows)
	f.ev.add("render")
}
func (f *fakeScreen) Clear() { f.ev.add("clear") }

type fakeKeys struct {
	ev   *events
	keys []byte
	err  error
}

func (f *fakeKeys) ReadKey() (byte, error) {
	if len(f.keys) == 0 {
		f.ev.add("read error")
		return 0, f.err
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	f.ev.add("read " + string(rune(k)))
	return k, nil
}

type fakeProber struct {
	rows, cols int
	err        error
	calls      int
}

func (f *fakeProber) Probe() (int, int, error) {
	f.calls++
	return f.rows, f.cols, f.err
}

var errEndOfScript = errors.New("end of script")

func newDriver(keys []byte) (*Driver, *fakeScreen, *fakeProber, *events) {
	ev := &events{}
	screen := &fakeScreen{ev: ev}
	prober := &fakeProber{rows: 24, cols: 80}
	d := New(screen, &fakeKeys{ev: ev, keys: keys, err: errEndOfScript}, prober, nil, log.New())
	return d, screen, prober, ev
}

func TestDriver_QuitAfterIgnoredKeys(t *testing.T) {
	d, screen, prober, ev := newDriver([]byte{'a', 'b', keyboard.CtrlQ})

	require.NoError(t, d.Run())

	assert.Equal(t, Terminated, d.State())
	assert.Equal(t, []string{
		"render", "read a",
		"render", "read b",
		"render", "read \x11",
		"clear",
	}, ev.list)
	assert.Equal(t, []int{24, 24, 24}, screen.renders)
	assert.Equal(t, 1, prober.calls)
	rows, cols := d.Size()
	assert.Equal(t, 24, rows)
	assert.Equal(t, 80, cols)
}

func TestDriver_OneRenderPerKey(t *testing.T) {
	var keys []byte
	for b := 0; b < 256; b++ {
		if byte(b) != keyboard.CtrlQ {
			keys = append(keys, byte(b))
		}
	}
	d, _, _, _ := newDriver(append(keys, keyboard.CtrlQ))

	require.NoError(t, d.Run())
	assert.Equal(t, len(keys)+1, d.Renders())
}

func TestDriver_NonQuitKeysKeepRunning(t *testing.T) {
	d, _, _, ev := newDriver(nil)
	for b := 0; b < 256; b++ {
		if byte(b) == keyboard.CtrlQ {
			continue
		}
		d.Dispatch(byte(b))
		require.Equal(t, Running, d.State(), "key 0x%02x", b)
	}
	assert.Empty(t, ev.list, "ignored keys produce no output")
}

func TestDriver_ReadErrorTerminates(t *testing.T) {
	d, _, _, ev := newDriver([]byte{'a'})

	err := d.Run()
	assert.ErrorIs(t, err, errEndOfScript)
	assert.Equal(t, Terminated, d.State())
	assert.Equal(t, []string{"render", "read a", "render", "read error"}, ev.list)
}

func TestDriver_ProbeFailureTerminatesWithoutRender(t *testing.T) {
	d, screen, prober, _ := newDriver([]byte{'a'})
	prober.err = errors.New("no size")

	err := d.Run()
	assert.EqualError(t, err, "no size")
	assert.Equal(t, Terminated, d.State())
	assert.Empty(t, screen.renders)
}

func TestDriver_TerminatedIsAbsorbing(t *testing.T) {
	d, _, prober, ev := newDriver([]byte{keyboard.CtrlQ, 'a'})
	require.NoError(t, d.Run())
	seen := len(ev.list)

	require.NoError(t, d.Run())
	d.Dispatch(keyboard.CtrlQ)

	assert.Equal(t, Terminated, d.State())
	assert.Equal(t, seen, len(ev.list))
	assert.Equal(t, 1, prober.calls)
}

func TestKeymap(t *testing.T) {
	assert.Equal(t, Quit, DefaultKeymap().Lookup(0x11))
	assert.Equal(t, None, DefaultKeymap().Lookup('q'))
	assert.Equal(t, Quit, NewKeymap('x').Lookup(0x18))
	assert.Equal(t, "quit", Quit.String())
	assert.Equal(t, "Command(9)", Command(9).String())
	assert.Equal(t, "terminated", Terminated.String())
}
