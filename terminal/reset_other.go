//go:build !linux

package terminal

// resetTerminalMode is a no-op where TCGETS is unavailable; the escape sequences
// written by EmergencyReset are the only recovery
func resetTerminalMode() {}
