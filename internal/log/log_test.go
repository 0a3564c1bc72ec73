package log

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{in: "debug", want: DEBUG, ok: true},
		{in: " INFO ", want: INFO, ok: true},
		{in: "", want: INFO, ok: true},
		{in: "Warn", want: WARN, ok: true},
		{in: "error", want: ERROR, ok: true},
		{in: "verbose", want: WARN, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l := WARN
			ok := l.UnmarshalText([]byte(tt.in))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestLevel_PaddedString(t *testing.T) {
	assert.Equal(t, "INFO ", INFO.PaddedString())
	assert.Equal(t, "DEBUG", DEBUG.PaddedString())
	assert.Equal(t, "Level(7)", Level(7).String())
}

func TestCoreLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLogLevel(WARN)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)
	l.Errorf("shown %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN ")
	assert.Contains(t, lines[0], "shown 3")
	assert.Contains(t, lines[0], "log_test.go")
	assert.Contains(t, lines[1], "ERROR")
}

func TestCoreLogger_Setup(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.Setup(&LoggerConfigurator{Writer: &buf, Level: "debug"})

	assert.Equal(t, DEBUG, l.GetLogLevel())
	l.Debugf("configured")
	assert.Contains(t, buf.String(), "configured")
}

func TestPackageLevel_WritesThroughDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	lc := NewLogConfigurator()
	lc.Writer = &buf
	lc.Level = "info"
	Setup(lc)
	t.Cleanup(func() {
		Setup(&LoggerConfigurator{Writer: io.Discard, Level: "INFO"})
	})

	Debugf("hidden")
	Infof("started %s", "jot")
	Errorf("failed %d", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO ")
	assert.Contains(t, lines[0], "started jot")
	assert.Contains(t, lines[0], "log_test.go")
	assert.Contains(t, lines[1], "ERROR")
	assert.Equal(t, INFO, GetDefaultLogger().GetLogLevel())
}

func TestNewLogConfigurator(t *testing.T) {
	lc := NewLogConfigurator()
	assert.Equal(t, io.Discard, lc.Output())
	assert.Equal(t, "INFO", lc.LogLevel())
	assert.NotEmpty(t, lc.TimestampFormat())
	assert.Empty(t, lc.CallerFormat())
}

func TestNew_DiscardsByDefault(t *testing.T) {
	l := New()
	assert.Equal(t, io.Discard, l.writer)
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "jot.log")
	w, err = OpenFile(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing", "jot.log"))
	assert.Error(t, err)
}
