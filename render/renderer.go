// Package render draws the board as ANSI frames into an output sink.
package render

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/lixenwraith/dois-mil/gameerr"
	"github.com/lixenwraith/dois-mil/terminal"
)

const (
	emptyGlyph = "·"
	wonBanner  = "YOU WON"
	lostBanner = "YOU LOST"
	quitHint   = "[q]uit"
)

// BoardView is the read-only board state a frame is drawn from
type BoardView interface {
	Size() int
	At(row, col int) uint32
	Score() uint64
	HasWon() bool
	HasMoves() bool
}

// flusher is implemented by buffered sinks such as *bufio.Writer
type flusher interface {
	Flush() error
}

// Renderer draws full frames as ANSI sequences into an output sink.
// Each frame is emitted in chunks; the first failed write aborts the frame.
type Renderer struct {
	mode terminal.ColorMode
	buf  []byte
}

// NewRenderer creates a renderer emitting colors for the given mode
func NewRenderer(mode terminal.ColorMode) *Renderer {
	return &Renderer{
		mode: mode,
		buf:  make([]byte, 0, 512),
	}
}

// Mode returns the color mode used for SGR output
func (r *Renderer) Mode() terminal.ColorMode {
	return r.mode
}

// Render draws view centered in a width x height terminal.
// Returns a *gameerr.SizeError before writing anything when the board does not fit,
// and a *gameerr.IOError when the sink fails.
func (r *Renderer) Render(w io.Writer, view BoardView, width, height int) error {
	l, err := ComputeLayout(view.Size(), width, height)
	if err != nil {
		return err
	}

	r.buf = terminal.AppendClear(r.buf[:0])
	if err := r.emit(w); err != nil {
		return err
	}

	for row := 0; row < l.Size; row++ {
		r.buf = terminal.AppendCursorPos(r.buf, l.CellX(0), l.RowY(row))
		for col := 0; col < l.Size; col++ {
			r.appendCell(view.At(row, col))
			// Separator column
			r.buf = append(r.buf, ' ')
		}
		if err := r.emit(w); err != nil {
			return err
		}
	}

	score := "Score: " + strconv.FormatUint(view.Score(), 10)
	r.buf = terminal.AppendCursorPos(r.buf, l.RightAlignX(len(score)), l.StatusY())
	r.buf = append(r.buf, score...)
	if err := r.emit(w); err != nil {
		return err
	}

	banner := ""
	if view.HasWon() {
		banner = wonBanner
	} else if !view.HasMoves() {
		banner = lostBanner
	}
	if x, y, ok := bannerPos(l, len(banner), len(score)); banner != "" && ok {
		r.buf = terminal.AppendCursorPos(r.buf, x, y)
		r.buf = terminal.AppendBold(r.buf)
		r.buf = append(r.buf, banner...)
		r.buf = terminal.AppendReset(r.buf)
		if err := r.emit(w); err != nil {
			return err
		}
	}

	if y := l.StatusY() + 2; l.Fits(y) {
		r.buf = terminal.AppendCursorPos(r.buf, l.RightAlignX(len(quitHint)), y)
		r.buf = append(r.buf, quitHint...)
		if err := r.emit(w); err != nil {
			return err
		}
	}

	return r.finish(w)
}

// RenderNotice draws a single centered message, used when the board cannot fit
func (r *Renderer) RenderNotice(w io.Writer, msg string, width, height int) error {
	r.buf = terminal.AppendClear(r.buf[:0])
	if width > 0 && height > 0 {
		runes := []rune(msg)
		if len(runes) > width {
			runes = runes[:width]
		}
		x := (width - len(runes)) / 2
		r.buf = terminal.AppendCursorPos(r.buf, x, (height-1)/2)
		r.buf = append(r.buf, string(runes)...)
	}
	if err := r.emit(w); err != nil {
		return err
	}
	return r.finish(w)
}

// bannerPos places the banner right-aligned below the status row, or left-aligned
// on the status row when the screen has no spare row and the score leaves a gap
func bannerPos(l Layout, bannerLen, scoreLen int) (x, y int, ok bool) {
	if below := l.StatusY() + 1; l.Fits(below) {
		return l.RightAlignX(bannerLen), below, true
	}
	x = l.CellX(0)
	if x+bannerLen < l.RightAlignX(scoreLen) {
		return x, l.StatusY(), true
	}
	return 0, 0, false
}

// appendCell writes one bold, tier-colored value right-aligned in CellWidth columns
func (r *Renderer) appendCell(v uint32) {
	r.buf = terminal.AppendBold(r.buf)
	r.buf = terminal.AppendFg(r.buf, r.mode, TileColor(v))

	var digits [10]byte
	text := digits[:0]
	if v == 0 {
		text = append(text, emptyGlyph...)
	} else {
		text = strconv.AppendUint(text, uint64(v), 10)
	}
	for pad := CellWidth - utf8.RuneCount(text); pad > 0; pad-- {
		r.buf = append(r.buf, ' ')
	}
	r.buf = append(r.buf, text...)
	r.buf = terminal.AppendReset(r.buf)
}

// finish hides the cursor and flushes buffered sinks
func (r *Renderer) finish(w io.Writer) error {
	r.buf = terminal.AppendHideCursor(r.buf)
	if err := r.emit(w); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return gameerr.IO("flush frame", err)
		}
	}
	return nil
}

// emit writes the pending chunk and resets the buffer
func (r *Renderer) emit(w io.Writer) error {
	_, err := w.Write(r.buf)
	r.buf = r.buf[:0]
	return gameerr.IO("write frame", err)
}
