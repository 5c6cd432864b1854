// Package gameerr classifies the failures shared by the grid engine, the renderer
// and the terminal glue into two kinds: the terminal is too small for the board,
// or an underlying read/write failed.
package gameerr

import (
	"errors"
	"fmt"
)

// Kind is the failure classification
type Kind uint8

const (
	KindNone Kind = iota
	KindTerminalSize
	KindIO
	KindOther // Not produced by this module (config, flags)
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTerminalSize:
		return "terminal-size"
	case KindIO:
		return "io"
	default:
		return "other"
	}
}

// ErrTerminalSize is matched by every *SizeError via errors.Is
var ErrTerminalSize = errors.New("terminal size isn't fit for the game")

// SizeError reports that the available terminal area cannot hold the board
type SizeError struct {
	Width, Height         int // Available cells
	NeedWidth, NeedHeight int // Required cells
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: have %dx%d, need %dx%d",
		ErrTerminalSize, e.Width, e.Height, e.NeedWidth, e.NeedHeight)
}

// Is reports ErrTerminalSize as the sentinel for all size errors
func (e *SizeError) Is(target error) bool {
	return target == ErrTerminalSize
}

// IOError wraps an output or input failure, keeping the original cause
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// IO wraps err as an *IOError labelled with op.
// Returns nil for a nil err and err unchanged if it already carries an *IOError.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Err: err}
}

// KindOf classifies err
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrTerminalSize) {
		return KindTerminalSize
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return KindIO
	}
	return KindOther
}

// IsTerminalSize reports whether err is a terminal size failure
func IsTerminalSize(err error) bool { return KindOf(err) == KindTerminalSize }

// IsIO reports whether err wraps an I/O failure
func IsIO(err error) bool { return KindOf(err) == KindIO }
