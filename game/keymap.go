package game

import (
	"github.com/lixenwraith/dois-mil/grid"
	"github.com/lixenwraith/dois-mil/terminal"
)

// ActionKind is what the session does in response to an event
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionQuit
	ActionRedraw
	ActionClose // Input stream ended or shutdown signal
	ActionError // Input stream failed
)

// Action is a translated input event
type Action struct {
	Kind ActionKind
	Dir  grid.Direction
}

var runeMoves = map[rune]grid.Direction{
	'h': grid.Left, 'j': grid.Down, 'k': grid.Up, 'l': grid.Right,
	'a': grid.Left, 's': grid.Down, 'w': grid.Up, 'd': grid.Right,
}

var keyMoves = map[terminal.Key]grid.Direction{
	terminal.KeyUp:    grid.Up,
	terminal.KeyDown:  grid.Down,
	terminal.KeyLeft:  grid.Left,
	terminal.KeyRight: grid.Right,
}

// Translate maps a terminal event to a session action
func Translate(ev terminal.Event) Action {
	switch ev.Type {
	case terminal.EventResize:
		return Action{Kind: ActionRedraw}
	case terminal.EventClosed:
		return Action{Kind: ActionClose}
	case terminal.EventError:
		return Action{Kind: ActionError}
	case terminal.EventKey:
	default:
		return Action{}
	}

	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC, terminal.KeyCtrlQ:
		return Action{Kind: ActionQuit}
	case terminal.KeyRune:
		// Alt-modified runes are not game keys
		if ev.Modifiers&terminal.ModAlt != 0 {
			return Action{}
		}
		if ev.Rune == 'q' || ev.Rune == 'Q' {
			return Action{Kind: ActionQuit}
		}
		if d, ok := runeMoves[ev.Rune]; ok {
			return Action{Kind: ActionMove, Dir: d}
		}
		return Action{}
	}

	if ev.Modifiers != terminal.ModNone {
		return Action{}
	}
	if d, ok := keyMoves[ev.Key]; ok {
		return Action{Kind: ActionMove, Dir: d}
	}
	return Action{}
}
