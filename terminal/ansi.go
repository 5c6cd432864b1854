package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// ANSI sequence fragments
var (
	csiSGR0  = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: ?7l keeps the cursor at the right edge instead of scrolling on a bottom-right write
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	csiAttrBold  = []byte("\x1b[1m")
	csiFg256     = []byte("\x1b[38;5;")
	csiFgRGB     = []byte("\x1b[38;2;")
	csiDefaultFg = []byte("\x1b[39m")
)

// AppendCursorPos appends a cursor move to 0-indexed column x, row y
func AppendCursorPos(dst []byte, x, y int) []byte {
	dst = append(dst, 0x1b, '[')
	dst = strconv.AppendInt(dst, int64(max(y, 0)+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(max(x, 0)+1), 10)
	return append(dst, 'H')
}

// AppendClear appends erase-display and cursor home
func AppendClear(dst []byte) []byte { return append(dst, csiClear...) }

// AppendReset appends SGR 0
func AppendReset(dst []byte) []byte { return append(dst, csiSGR0...) }

func AppendBold(dst []byte) []byte { return append(dst, csiAttrBold...) }

func AppendHideCursor(dst []byte) []byte { return append(dst, csiCursorHide...) }

func AppendShowCursor(dst []byte) []byte { return append(dst, csiCursorShow...) }

// AppendFg appends a foreground color selection for the given mode.
// Palette colors stay indexed in 256 mode; RGB colors are quantized to the nearest index.
// Invalid or default colors select the terminal's default foreground.
func AppendFg(dst []byte, mode ColorMode, c tcell.Color) []byte {
	if !c.Valid() {
		return append(dst, csiDefaultFg...)
	}

	if mode == ColorModeTrueColor {
		r, g, b := c.RGB()
		if r < 0 {
			return append(dst, csiDefaultFg...)
		}
		dst = append(dst, csiFgRGB...)
		dst = strconv.AppendInt(dst, int64(r), 10)
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(g), 10)
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(b), 10)
		return append(dst, 'm')
	}

	var idx int
	if c.IsRGB() {
		r, g, b := c.RGB()
		idx = int(RGBTo256(uint8(r), uint8(g), uint8(b)))
	} else {
		idx = int(c - tcell.ColorValid)
	}
	if idx < 0 || idx > 255 {
		return append(dst, csiDefaultFg...)
	}
	dst = append(dst, csiFg256...)
	dst = strconv.AppendInt(dst, int64(idx), 10)
	return append(dst, 'm')
}
