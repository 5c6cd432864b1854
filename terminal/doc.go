// Package terminal provides direct ANSI terminal control for the game.
//
// Features:
//   - Raw mode and alternate screen buffer with guaranteed restoration (Run)
//   - Raw stdin input parsing with escape sequence handling
//   - SIGWINCH resize detection
//   - 256-color and true color SGR encoding of tcell colors
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
