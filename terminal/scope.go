package terminal

import "github.com/lixenwraith/dois-mil/gameerr"

// Run initializes t, calls fn and restores the terminal on every exit path,
// including a panic inside fn. The panic is re-raised after restoration.
func Run(t Terminal, fn func(Terminal) error) error {
	if err := t.Init(); err != nil {
		return gameerr.IO("terminal init", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fini()
			panic(r)
		}
		t.Fini()
	}()

	return fn(t)
}
