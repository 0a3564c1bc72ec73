package terminal

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
	"golang.org/x/sys/unix"
)

var (
	ErrTerminalQuery  = errors.New("cannot read terminal configuration")
	ErrTerminalConfig = errors.New("cannot apply terminal configuration")
	ErrSessionActive  = errors.New("terminal session already entered")
	ErrTerminated     = errors.New("terminated by signal")
)

// Session owns the terminal for the lifetime of the editor. It captures the baseline settings
// once, switches the device to raw mode and puts the baseline back on Restore.
type Session struct {
	mu         sync.Mutex
	device     Device
	idle       time.Duration
	log        *log.CoreLogger
	onSignal   func(os.Signal)
	guard      *guard
	baseline   *unix.Termios
	restored   bool
	restoreErr error
}

type Option func(*Session)

// WithIdleTimeout sets how long a read waits for input before returning empty.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.idle = d
	}
}

func WithLogger(l *log.CoreLogger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithSignalGuard arms fn to run when a terminating signal arrives while the session is entered.
// fn is expected to restore the session and end the process.
func WithSignalGuard(fn func(os.Signal)) Option {
	return func(s *Session) {
		s.onSignal = fn
	}
}

func New(device Device, opts ...Option) *Session {
	s := &Session{
		device: device,
		idle:   DefaultIdleTimeout,
		log:    log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enter captures the current settings and applies raw mode. If raw mode cannot be applied the
// baseline is put back before the error is returned.
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.baseline != nil {
		return common.NewOpError("enter raw mode", ErrSessionActive, nil)
	}

	var attr unix.Termios
	if err := s.device.GetAttr(&attr); err != nil {
		return common.NewOpError("tcgetattr", ErrTerminalQuery, err)
	}
	baseline := attr
	s.baseline = &baseline

	if s.onSignal != nil {
		s.guard = startGuard(s.onSignal, s.log)
	}

	raw := MakeRaw(attr, s.idle)
	if err := s.device.SetAttr(&raw); err != nil {
		if rerr := s.restoreLocked(); rerr != nil {
			s.log.Errorf("Restore after failed raw mode: %v", rerr)
		}
		return common.NewOpError("tcsetattr", ErrTerminalConfig, err)
	}

	s.log.Infof("Raw mode entered, idle timeout %v", s.idle)
	return nil
}

// Restore reapplies the baseline. Only the first call touches the device; later calls report the
// result of the first. Restoring a session that was never entered does nothing.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreLocked()
}

func (s *Session) restoreLocked() error {
	if s.baseline == nil || s.restored {
		return s.restoreErr
	}
	s.restored = true

	if s.guard != nil {
		s.guard.stop()
		s.guard = nil
	}

	baseline := *s.baseline
	if err := s.device.SetAttr(&baseline); err != nil {
		s.restoreErr = common.NewOpError("tcsetattr", ErrTerminalConfig, err)
		s.log.Errorf("Terminal restore failed: %v", err)
		return s.restoreErr
	}
	s.log.Infof("Terminal restored")
	return nil
}

// Baseline returns a copy of the captured settings and whether any were captured.
func (s *Session) Baseline() (unix.Termios, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseline == nil {
		return unix.Termios{}, false
	}
	return *s.baseline, true
}

// Restored reports whether the baseline has been put back.
func (s *Session) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}
