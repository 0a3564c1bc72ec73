package geometry

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
	"github.td.teradata.com/sandbox/jot/internal/services/display"
	"golang.org/x/term"
)

var (
	ErrGeometryUnavailable = errors.New("window size unavailable")

	// the fallback parks the cursor but does not ask the terminal where it ended up
	errNoPosition = errors.New("cursor position not reported")
)

const probeOp = "getWindowSize"

// Strategy selects how the window size is discovered.
type Strategy string

const (
	// Query asks the OS first and only falls back when it cannot answer.
	Query Strategy = "query"
	// Fallback skips the OS query entirely.
	Fallback Strategy = "fallback"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case Query, Fallback:
		return st, nil
	case "":
		return Query, nil
	default:
		return "", fmt.Errorf("unknown geometry strategy %q, expected %q or %q", s, Query, Fallback)
	}
}

// SizeFunc reports the window size in the order golang.org/x/term does: width first.
type SizeFunc func() (cols, rows int, err error)

// TerminalSize queries the window size of fd.
func TerminalSize(fd uintptr) SizeFunc {
	return func() (int, int, error) {
		return term.GetSize(int(fd))
	}
}

type Prober struct {
	out      io.Writer
	keys     common.KeyReader
	size     SizeFunc
	strategy Strategy
	log      *log.CoreLogger
}

func New(out io.Writer, keys common.KeyReader, size SizeFunc, strategy Strategy, l *log.CoreLogger) *Prober {
	if l == nil {
		l = log.GetDefaultLogger()
	}
	if strategy == "" {
		strategy = Query
	}
	return &Prober{
		out:      out,
		keys:     keys,
		size:     size,
		strategy: strategy,
		log:      l,
	}
}

// Probe returns the visible rows and columns. There is no default size: when neither the query nor
// the fallback produces one the error wraps ErrGeometryUnavailable.
func (p *Prober) Probe() (rows int, cols int, err error) {
	if p.strategy == Query && p.size != nil {
		if c, r, e := p.size(); e != nil {
			p.log.Warnf("Window size query failed, using cursor fallback: %v", e)
		} else if c == 0 {
			p.log.Warnf("Window size query reported zero columns, using cursor fallback")
		} else {
			p.log.Infof("Window size %dx%d", c, r)
			return r, c, nil
		}
	}
	return 0, 0, p.fallback()
}

func (p *Prober) fallback() error {
	p.log.Debugf("Moving cursor to bottom right")
	if n, err := io.WriteString(p.out, display.BottomRight); err != nil {
		return common.NewOpError(probeOp, ErrGeometryUnavailable, err)
	} else if n != len(display.BottomRight) {
		return common.NewOpError(probeOp, ErrGeometryUnavailable, io.ErrShortWrite)
	}

	if _, err := p.keys.ReadKey(); err != nil {
		return common.NewOpError(probeOp, ErrGeometryUnavailable, err)
	}
	return common.NewOpError(probeOp, ErrGeometryUnavailable, errNoPosition)
}
