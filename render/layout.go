package render

import "github.com/lixenwraith/dois-mil/gameerr"

const (
	// CellWidth is the field width of one tile value
	CellWidth = 6
	// StatusRows is the number of rows reserved below the grid
	StatusRows = 1
)

// Layout is the placement of a board inside the terminal, 0-indexed
type Layout struct {
	Size      int
	Left, Top int
	Width     int // Columns used by the grid including separators
	Height    int // Grid rows plus status rows
	ScreenW   int
	ScreenH   int
}

// RequiredSize returns the minimum terminal dimensions for a board of the given side
func RequiredSize(size int) (width, height int) {
	return size*CellWidth + size + 1, size + StatusRows
}

// ComputeLayout centers a board of the given side in a width x height terminal.
// Fails with a *gameerr.SizeError when either dimension is too small.
func ComputeLayout(size, width, height int) (Layout, error) {
	needW, needH := RequiredSize(size)
	if width < needW || height < needH {
		return Layout{}, &gameerr.SizeError{
			Width:      width,
			Height:     height,
			NeedWidth:  needW,
			NeedHeight: needH,
		}
	}

	return Layout{
		Size:    size,
		Left:    (width - needW + 1) / 2,
		Top:     (height - needH + 1) / 2,
		Width:   needW,
		Height:  needH,
		ScreenW: width,
		ScreenH: height,
	}, nil
}

// CellX returns the first column of the value field for board column col
func (l Layout) CellX(col int) int {
	return l.Left + 1 + col*(CellWidth+1)
}

// RowY returns the screen row of board row r
func (l Layout) RowY(r int) int {
	return l.Top + r
}

// StatusY is the row holding the score
func (l Layout) StatusY() int {
	return l.Top + l.Size
}

// RightAlignX returns the column where text of n columns must start to end at
// the last tile column
func (l Layout) RightAlignX(n int) int {
	return max(l.Left+l.Width-1-n, l.Left)
}

// Fits reports whether row y is on screen
func (l Layout) Fits(y int) bool {
	return y < l.ScreenH
}
