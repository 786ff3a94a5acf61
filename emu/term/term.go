// Package term implements a frontend that runs in a terminal: the frame is
// drawn with block characters and keys are read from stdin in raw mode.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Terminals only report key presses, a pressed key is held down for this long.
const keyRepeatDuration = time.Second / 5

const (
	escape      = 0x1b
	home        = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearLine   = "\x1b[K"
)

// statusRow moves the cursor to the line below the rendered frame.
var statusRow = fmt.Sprintf("\x1b[%d;1H", cpu.DisplayHeight/2+1)

var ErrNotTerminal = errors.New("input is not a terminal")

var _ host.Frontend = (*Terminal)(nil)

type Terminal struct {
	in                     *os.File
	out                    io.Writer
	originalTerminalConfig unix.Termios

	mu      sync.Mutex
	held    [cpu.KeyCount]time.Time // release deadline per key
	quit    bool
	closed  bool
	buzzing bool
	now     func() time.Time
}

// New switches in to raw mode and starts reading keys from it.
func New(in *os.File, out io.Writer) (*Terminal, error) {
	if !xterm.IsTerminal(int(in.Fd())) {
		return nil, ErrNotTerminal
	}

	t := newTerminal(out)
	t.in = in
	if err := t.enableRawMode(); err != nil {
		return nil, err
	}

	fmt.Fprint(t.out, hideCursor+clearScreen)
	go t.readKeys(in)
	return t, nil
}

func newTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
		now: time.Now,
	}
}

// enableRawMode disables line buffering and echo.
func (t *Terminal) enableRawMode() error {
	if err := termios.Tcgetattr(t.in.Fd(), &t.originalTerminalConfig); err != nil {
		return fmt.Errorf("reading terminal attributes: %w", err)
	}

	raw := t.originalTerminalConfig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &raw); err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	return nil
}

func (t *Terminal) disableRawMode() error {
	return termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &t.originalTerminalConfig)
}

// readKeys runs until the input fails or a byte arrives after Close.
func (t *Terminal) readKeys(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		if !t.press(b) {
			return
		}
	}
}

// press records a key byte and reports whether the terminal is still open.
func (t *Terminal) press(b byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	if b == escape {
		t.quit = true
		return true
	}
	if code, ok := host.KeyForRune(rune(b)); ok {
		t.held[code] = t.now().Add(keyRepeatDuration)
	}
	return true
}

func (t *Terminal) PollKeys() ([cpu.KeyCount]bool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var keys [cpu.KeyCount]bool
	for code, deadline := range t.held {
		keys[code] = now.Before(deadline)
	}
	return keys, t.quit
}

func (t *Terminal) Draw(frame []uint32) {
	fmt.Fprint(t.out, home+Render(frame)+t.status()+clearLine+"\r\n")
}

// Buzz rewrites the status line when the sound state changes, the frame
// is not redrawn for it.
func (t *Terminal) Buzz(on bool) {
	if on == t.buzzing {
		return
	}
	t.buzzing = on
	fmt.Fprint(t.out, statusRow+t.status()+clearLine)
}

func (t *Terminal) status() string {
	if t.buzzing {
		return "BEEP"
	}
	return ""
}

// Close restores the terminal. The key reader stays blocked in its pending
// read; the byte that wakes it is dropped and the reader exits, otherwise it
// ends with the process.
func (t *Terminal) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	fmt.Fprint(t.out, showCursor+"\r\n")
	if t.in == nil {
		return nil
	}
	return t.disableRawMode()
}

// Render draws a frame with half block characters, two display rows per line.
func Render(frame []uint32) string {
	var sb strings.Builder
	sb.Grow(cpu.DisplayHeight / 2 * (cpu.DisplayWidth*3 + 2))

	lit := func(x, y int) bool {
		return frame[y*cpu.DisplayWidth+x] != cpu.PixelOff
	}

	for y := 0; y < cpu.DisplayHeight; y += 2 {
		for x := 0; x < cpu.DisplayWidth; x++ {
			upper, lower := lit(x, y), lit(x, y+1)
			switch {
			case upper && lower:
				sb.WriteRune('█')
			case upper:
				sb.WriteRune('▀')
			case lower:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
