// Command input-test shows how raw terminal input is decoded and which game action each key triggers.
// Ctrl+C exits; every other key, including q and Esc, is only logged.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/dois-mil/game"
	"github.com/lixenwraith/dois-mil/terminal"
)

const maxLog = 16

func main() {
	term := terminal.New(terminal.DetectColorMode())

	err := terminal.Run(term, func(t terminal.Terminal) error {
		var log []string
		w, h := t.Size()

		for {
			if err := draw(t, log, w, h); err != nil {
				return err
			}

			ev := t.PollEvent()
			switch ev.Type {
			case terminal.EventKey:
				if ev.Key == terminal.KeyCtrlC {
					return nil
				}
			case terminal.EventResize:
				w, h = ev.Width, ev.Height
			case terminal.EventClosed:
				return nil
			}
			log = appendLog(log, formatEvent(ev))
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "input-test: %v\n", err)
		os.Exit(1)
	}
}

func appendLog(log []string, line string) []string {
	log = append(log, line)
	if len(log) > maxLog {
		log = log[len(log)-maxLog:]
	}
	return log
}

func draw(t terminal.Terminal, log []string, w, h int) error {
	buf := terminal.AppendClear(nil)
	buf = terminal.AppendBold(buf)
	buf = append(buf, "Input Test - press keys, Ctrl+C to quit"...)
	buf = terminal.AppendReset(buf)

	for i, line := range log {
		y := 2 + i
		if y >= h-1 {
			break
		}
		if len(line) > w {
			line = line[:w]
		}
		buf = terminal.AppendCursorPos(buf, 0, y)
		buf = append(buf, line...)
	}

	buf = terminal.AppendCursorPos(buf, 0, h-1)
	buf = append(buf, fmt.Sprintf("Size: %dx%d | Color: %s", w, h, t.ColorMode())...)

	out := t.Output()
	if _, err := out.Write(buf); err != nil {
		return err
	}
	if f, ok := out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func formatEvent(ev terminal.Event) string {
	switch ev.Type {
	case terminal.EventResize:
		return fmt.Sprintf("RESIZE: %dx%d", ev.Width, ev.Height)
	case terminal.EventError:
		return fmt.Sprintf("ERROR: %v", ev.Err)
	case terminal.EventKey:
	default:
		return strings.ToUpper(ev.Type.String())
	}

	var mods string
	if ev.Modifiers&terminal.ModShift != 0 {
		mods += "Shift+"
	}
	if ev.Modifiers&terminal.ModAlt != 0 {
		mods += "Alt+"
	}
	if ev.Modifiers&terminal.ModCtrl != 0 && ev.Key != terminal.KeyRune && !isCtrlLetter(ev.Key) {
		mods += "Ctrl+"
	}

	name := ev.Key.String()
	if ev.Key == terminal.KeyRune {
		if ev.Rune >= 0x20 && ev.Rune < 0x7f {
			name = fmt.Sprintf("'%c'", ev.Rune)
		} else {
			name = fmt.Sprintf("U+%04X", ev.Rune)
		}
	}

	return fmt.Sprintf("KEY: %s%s -> %s", mods, name, describeAction(game.Translate(ev)))
}

// Ctrl letters already carry the modifier in their name
func isCtrlLetter(k terminal.Key) bool {
	return k >= terminal.KeyCtrlA && k <= terminal.KeyCtrlZ
}

func describeAction(a game.Action) string {
	switch a.Kind {
	case game.ActionMove:
		return "move " + a.Dir.String()
	case game.ActionQuit:
		return "quit"
	case game.ActionRedraw:
		return "redraw"
	case game.ActionClose:
		return "close"
	case game.ActionError:
		return "error"
	}
	return "ignored"
}
