package keyboard

import (
	"errors"

	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
	"golang.org/x/sys/unix"
)

var ErrInput = errors.New("input error")

// Reader blocks until exactly one byte has been read.
type Reader struct {
	src      Source
	log      *log.CoreLogger
	buf      [1]byte
	timeouts int
}

func NewReader(src Source, l *log.CoreLogger) *Reader {
	if l == nil {
		l = log.GetDefaultLogger()
	}
	return &Reader{src: src, log: l}
}

// ReadKey reissues the read for as long as it times out, so callers never see a timeout.
func (r *Reader) ReadKey() (byte, error) {
	waited := 0
	for {
		n, err := r.src.Read(r.buf[:])
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				waited++
				continue
			}
			return 0, common.NewOpError("read", ErrInput, err)
		}
		if n == 1 {
			r.timeouts += waited
			if waited > 0 {
				r.log.Debugf("Key 0x%02x after %d idle timeouts", r.buf[0], waited)
			}
			return r.buf[0], nil
		}
		waited++
	}
}

// Timeouts returns how many empty reads have been absorbed so far.
func (r *Reader) Timeouts() int {
	return r.timeouts
}
