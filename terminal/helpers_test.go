package terminal

import (
	"bytes"
	"errors"
	"sync"
)

type readResult struct {
	data []byte
	err  error
}

// scriptedBackend replays reads in order, then idles until stopped
type scriptedBackend struct {
	mu       sync.Mutex
	reads    []readResult
	out      bytes.Buffer
	writeErr error
	initErr  error
	width    int
	height   int

	inited bool
	finied int
	onSize func(w, h int)
}

func (b *scriptedBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.inited = true
	return nil
}

func (b *scriptedBackend) Fini() { b.finied++ }

func (b *scriptedBackend) Size() (int, int) { return b.width, b.height }

func (b *scriptedBackend) Write(p []byte) (int, error) {
	if b.writeErr != nil {
		return 0, b.writeErr
	}
	return b.out.Write(p)
}

func (b *scriptedBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	b.mu.Lock()
	if len(b.reads) > 0 {
		r := b.reads[0]
		b.reads = b.reads[1:]
		b.mu.Unlock()
		return r.data, r.err
	}
	b.mu.Unlock()
	<-stopCh
	return nil, nil
}

func (b *scriptedBackend) SetResizeHandler(handler func(width, height int)) {
	b.onSize = handler
}

var errBrokenPipe = errors.New("broken pipe")

// drain collects every queued event without blocking
func drain(r *inputReader) []Event {
	var evs []Event
	for {
		select {
		case ev := <-r.eventCh:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}
