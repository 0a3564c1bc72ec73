package keyboard

import (
	"golang.org/x/sys/unix"
)

// Source is where key bytes come from. A read that returns (0, nil) means nothing arrived within
// the idle timeout.
type Source interface {
	Read(p []byte) (int, error)
}

// FdSource reads a raw file descriptor directly. os.File reports an empty read as io.EOF, which would
// make an idle timeout indistinguishable from a closed stream.
type FdSource struct {
	fd int
}

func NewFdSource(fd uintptr) *FdSource {
	return &FdSource{fd: int(fd)}
}

func (s *FdSource) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}
