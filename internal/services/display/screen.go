package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.td.teradata.com/sandbox/jot/internal/log"
)

const (
	DefaultPlaceholder = "~"

	LineBreak = "\r\n" // OPOST is off, so the carriage return is ours to send
	Extreme   = 999    // terminals clamp cursor moves to the last row and column
)

var (
	ClearScreen = ansi.EraseEntireScreen  // clears entire screen
	Home        = ansi.CursorHomePosition // moves cursor to row 1 column 1
	BottomRight = ansi.CursorForward(Extreme) + ansi.CursorDown(Extreme)
)

// Screen writes the redraw protocol to the terminal. Each step is a separate write.
type Screen struct {
	out         io.Writer
	placeholder string
	log         *log.CoreLogger
}

func New(out io.Writer, placeholder string, l *log.CoreLogger) *Screen {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if l == nil {
		l = log.GetDefaultLogger()
	}
	return &Screen{
		out:         out,
		placeholder: placeholder,
		log:         l,
	}
}

// Render clears the screen, draws one placeholder line per row and parks the cursor at home.
func (s *Screen) Render(rows int) {
	s.write(ClearScreen)
	s.write(Home)
	line := s.placeholder + LineBreak
	for row := 0; row < rows; row++ {
		s.write(line)
	}
	s.write(Home)
}

// Clear blanks the screen and homes the cursor.
func (s *Screen) Clear() {
	s.write(ClearScreen)
	s.write(Home)
}

func (s *Screen) Placeholder() string {
	return s.placeholder
}

// Write failures are not fatal to a redraw; the next cycle draws everything again.
func (s *Screen) write(seq string) {
	if _, err := io.WriteString(s.out, seq); err != nil {
		s.log.Warnf("Write of %q failed: %v", strings.TrimSpace(seq), err)
	}
}
