package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode and the alternate screen, hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	Size() (width, height int)

	ColorMode() ColorMode

	// Output is the buffered frame sink; callers flush it once per frame
	Output() io.Writer

	// PollEvent blocks until the next input, resize or synthetic event
	PollEvent() Event

	// PostEvent injects a synthetic event without blocking
	PostEvent(Event)
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend   Backend
	colorMode ColorMode

	out         *bufio.Writer
	input       *inputReader
	resizeCh    chan Event
	syntheticCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

const outputBufferSize = 16 * 1024

// New creates a terminal on stdin/stdout with the given color mode
func New(mode ColorMode) Terminal {
	return newTerm(newBackend(), mode)
}

func newTerm(b Backend, mode ColorMode) *termImpl {
	return &termImpl{
		backend:     b,
		colorMode:   mode,
		out:         bufio.NewWriterSize(b, outputBufferSize),
		syntheticCh: make(chan Event, 16),
		resizeCh:    make(chan Event, 1),
	}
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.input = newInputReader(t.backend)

	t.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Keep only the latest size pending
		select {
		case t.resizeCh <- ev:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	t.out.Write(csiAltScreenEnter)
	t.out.Write(csiCursorHide)
	t.out.Write(csiAutoWrapOff)
	t.out.Write(csiClear)
	if err := t.out.Flush(); err != nil {
		t.backend.Fini()
		return err
	}

	t.input.start()

	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	// Discard any half-written frame
	t.out.Reset(t.backend)

	t.out.Write(csiSGR0)
	t.out.Write(csiCursorShow)
	t.out.Write(csiAltScreenExit)
	// Re-enable wrap after leaving the alt screen so the main buffer gets it
	t.out.Write(csiAutoWrapOn)
	t.out.Flush()

	t.backend.Fini()

	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) Output() io.Writer {
	return t.out
}

func (t *termImpl) PollEvent() Event {
	select {
	case ev := <-t.syntheticCh:
		return ev
	default:
	}

	select {
	case ev := <-t.syntheticCh:
		return ev
	case ev := <-t.input.events():
		return ev
	case ev := <-t.resizeCh:
		return ev
	}
}

func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
	}
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best effort
	resetTerminalMode()
}
