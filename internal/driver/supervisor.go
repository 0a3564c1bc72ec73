package driver

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
)

// Clearer blanks the screen and homes the cursor.
type Clearer interface {
	Clear()
}

// Supervisor is the one place the process decides how to end. Components return errors; the
// supervisor clears the screen, restores the terminal, reports and picks the exit code.
type Supervisor struct {
	name    string
	session common.Restorer
	screen  Clearer
	diag    io.Writer
	log     *log.CoreLogger
}

func NewSupervisor(name string, session common.Restorer, screen Clearer, diag io.Writer, l *log.CoreLogger) *Supervisor {
	if l == nil {
		l = log.GetDefaultLogger()
	}
	return &Supervisor{
		name:    name,
		session: session,
		screen:  screen,
		diag:    diag,
		log:     l,
	}
}

// Run calls fn and returns the process exit code: 0 when fn returns nil, 1 when it fails or panics.
func (s *Supervisor) Run(fn func() error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = s.Fail(fmt.Errorf("panic: %v\n%s", r, debug.Stack()))
		}
	}()

	if err := fn(); err != nil {
		return s.Fail(err)
	}
	return s.Exit()
}

// Exit restores the terminal after an orderly quit. A restore failure is reported but the quit
// still exits 0.
func (s *Supervisor) Exit() int {
	if err := s.session.Restore(); err != nil {
		s.report("restore", err)
	}
	return 0
}

// Fail runs the fatal sequence: clear, home, restore, report. Every step runs even if an earlier
// one fails.
func (s *Supervisor) Fail(err error) int {
	s.log.Errorf("Fatal: %v", err)

	attempt(s.log, "clear screen", func() error {
		s.screen.Clear()
		return nil
	})
	var restoreErr error
	attempt(s.log, "restore terminal", func() error {
		restoreErr = s.session.Restore()
		return restoreErr
	})

	s.report("", err)
	if restoreErr != nil {
		s.report("restore", restoreErr)
	}
	return 1
}

func (s *Supervisor) report(prefix string, err error) {
	if prefix != "" {
		_, _ = fmt.Fprintf(s.diag, "%s: %s: %v\n", s.name, prefix, err)
		return
	}
	_, _ = fmt.Fprintf(s.diag, "%s: %v\n", s.name, err)
}

func attempt(l *log.CoreLogger, step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			l.Errorf("%s panicked: %v", step, r)
		}
	}()
	if err := fn(); err != nil {
		l.Errorf("%s failed: %v", step, err)
	}
}
