package render

import "github.com/gdamore/tcell/v2"

// Tile tier colors, xterm-256 palette entries
var (
	ColorEmpty = tcell.PaletteColor(247) // Gray
	Color2     = tcell.PaletteColor(202) // Orange red
	Color4     = tcell.PaletteColor(214) // Orange
	Color8     = tcell.PaletteColor(226) // Yellow
	Color16    = tcell.PaletteColor(40)  // Green
	Color32    = tcell.PaletteColor(47)  // Spring green
	Color64    = tcell.PaletteColor(14)  // Cyan
	Color128   = tcell.PaletteColor(33)  // Azure
	Color256   = tcell.PaletteColor(141) // Lavender
	Color512   = tcell.PaletteColor(213) // Orchid
	Color1024  = tcell.PaletteColor(201) // Magenta
	ColorHigh  = tcell.PaletteColor(196) // Red, every value above 1024
)

// tierColors is indexed by log2(value); index 0 holds the empty cell color
var tierColors = [...]tcell.Color{
	ColorEmpty,
	Color2,
	Color4,
	Color8,
	Color16,
	Color32,
	Color64,
	Color128,
	Color256,
	Color512,
	Color1024,
}

// TileColor returns the foreground color for a cell value
func TileColor(v uint32) tcell.Color {
	if v == 0 {
		return ColorEmpty
	}
	tier := 0
	for v > 1 {
		v >>= 1
		tier++
	}
	if tier < len(tierColors) {
		return tierColors[tier]
	}
	return ColorHigh
}
