//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Reported when TIOCGWINSZ fails, e.g. output redirected to a file
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

var errNotTTY = errors.New("stdin is not a terminal")

// ttyBackend drives the controlling terminal through stdin/stdout file descriptors
type ttyBackend struct {
	out   *os.File
	inFd  int
	outFd int
	saved *term.State

	readBuf [256]byte

	winchStop chan struct{}
	winchDone chan struct{}
}

func newBackend() Backend {
	return &ttyBackend{
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return errNotTTY
	}
	state, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.saved = state
	return nil
}

func (b *ttyBackend) Fini() {
	if b.winchStop != nil {
		close(b.winchStop)
		<-b.winchDone
		b.winchStop = nil
	}
	if b.saved != nil {
		term.Restore(b.inFd, b.saved)
		b.saved = nil
	}
}

func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return fallbackWidth, fallbackHeight
	}
	return int(ws.Col), int(ws.Row)
}

func (b *ttyBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read polls stdin for at most pollTimeoutMs per call.
// Only the input goroutine calls Read, so readBuf is not shared.
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		ready, err := unix.Poll(fds, pollTimeoutMs)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return nil, err
		case ready == 0:
			return nil, nil
		}

		n, err := unix.Read(b.inFd, b.readBuf[:])
		switch {
		case errors.Is(err, unix.EINTR), errors.Is(err, unix.EAGAIN):
			continue
		case err != nil:
			return nil, err
		case n == 0:
			return nil, io.EOF
		}
		return append([]byte(nil), b.readBuf[:n]...), nil
	}
}

// SetResizeHandler reports the new size on every SIGWINCH until Fini
func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	b.winchStop = make(chan struct{})
	b.winchDone = make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				handler(b.Size())
			}
		}
	}(b.winchStop, b.winchDone)
}
