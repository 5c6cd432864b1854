package terminal

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		consumed int
		want     []Event
	}{
		{
			name:     "printable rune",
			in:       "q",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyRune, Rune: 'q'}},
		},
		{
			name:     "csi arrow",
			in:       "\x1b[A",
			consumed: 3,
			want:     []Event{{Type: EventKey, Key: KeyUp}},
		},
		{
			name:     "ss3 arrow",
			in:       "\x1bOB",
			consumed: 3,
			want:     []Event{{Type: EventKey, Key: KeyDown}},
		},
		{
			name:     "ctrl arrow",
			in:       "\x1b[1;5C",
			consumed: 6,
			want:     []Event{{Type: EventKey, Key: KeyRight, Modifiers: ModCtrl}},
		},
		{
			name:     "ctrl c",
			in:       "\x03",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyCtrlC, Modifiers: ModCtrl}},
		},
		{
			name:     "ctrl q",
			in:       "\x11",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyCtrlQ, Modifiers: ModCtrl}},
		},
		{
			name:     "carriage return",
			in:       "\r",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyEnter}},
		},
		{
			name:     "delete byte",
			in:       "\x7f",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyBackspace}},
		},
		{
			name:     "utf8 rune",
			in:       "é",
			consumed: 2,
			want:     []Event{{Type: EventKey, Key: KeyRune, Rune: 'é'}},
		},
		{
			name:     "alt rune",
			in:       "\x1bx",
			consumed: 2,
			want:     []Event{{Type: EventKey, Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		},
		{
			name:     "unknown csi swallowed",
			in:       "\x1b[99X",
			consumed: 5,
		},
		{
			name:     "several keys in one read",
			in:       "h\x1b[Dl",
			consumed: 5,
			want: []Event{
				{Type: EventKey, Key: KeyRune, Rune: 'h'},
				{Type: EventKey, Key: KeyLeft},
				{Type: EventKey, Key: KeyRune, Rune: 'l'},
			},
		},
		{
			name:     "lone escape waits",
			in:       "\x1b",
			consumed: 0,
		},
		{
			name:     "partial csi waits",
			in:       "a\x1b[",
			consumed: 1,
			want:     []Event{{Type: EventKey, Key: KeyRune, Rune: 'a'}},
		},
		{
			name:     "partial utf8 waits",
			in:       "\xc3",
			consumed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInputReader(nil)
			consumed := r.parseInput([]byte(tt.in))
			if consumed != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", consumed, tt.consumed)
			}
			if diff := cmp.Diff(tt.want, drain(r)); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyUp, "Up"},
		{KeyEscape, "Esc"},
		{KeyCtrlC, "Ctrl-C"},
		{KeyCtrlQ, "Ctrl-Q"},
		{Key(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func waitEvent(t *testing.T, r *inputReader) Event {
	t.Helper()
	select {
	case ev := <-r.events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestReadLoopSplitSequenceAndIdleEscape(t *testing.T) {
	b := &scriptedBackend{reads: []readResult{
		{data: []byte("\x1b[")},
		{data: []byte("B")},
		{data: []byte("\x1b")},
		{}, // idle poll
		{err: io.EOF},
	}}
	r := newInputReader(b)
	r.start()
	defer r.stop()

	want := []Event{
		{Type: EventKey, Key: KeyDown},
		{Type: EventKey, Key: KeyEscape},
		{Type: EventClosed},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, waitEvent(t, r)); diff != "" {
			t.Fatalf("event %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestReadLoopReportsReadError(t *testing.T) {
	b := &scriptedBackend{reads: []readResult{{err: errBrokenPipe}}}
	r := newInputReader(b)
	r.start()
	defer r.stop()

	ev := waitEvent(t, r)
	if ev.Type != EventError {
		t.Fatalf("event type = %v, want error", ev.Type)
	}
	if !errors.Is(ev.Err, errBrokenPipe) {
		t.Errorf("event error = %v, want %v", ev.Err, errBrokenPipe)
	}
}
