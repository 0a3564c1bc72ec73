package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"github.td.teradata.com/sandbox/jot/internal/log"
)

// Signals that end the process while the terminal is raw. Ctrl-C and Ctrl-Z arrive as bytes once
// ISIG is off, so these only come from outside the session.
var guardedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT, os.Interrupt}

type guard struct {
	sig    chan os.Signal
	stopCh chan struct{}
}

func startGuard(handler func(os.Signal), l *log.CoreLogger) *guard {
	g := &guard{
		sig:    make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
	}
	signal.Notify(g.sig, guardedSignals...)

	go func() {
		select {
		case <-g.stopCh:
		case sig := <-g.sig:
			l.Warnf("Received %v, shutting down", sig)
			handler(sig)
		}
	}()
	return g
}

// stop must not wait for the watcher: the handler itself may be the caller via Restore.
func (g *guard) stop() {
	signal.Stop(g.sig)
	close(g.stopCh)
}
