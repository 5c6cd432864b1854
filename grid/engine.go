// Package grid implements the 2048 board: sliding and merging tiles in one of four
// directions, spawning new tiles from an injectable random source, and the win/loss
// predicates. It performs no I/O.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Engine owns the board and the score.
// Not safe for concurrent use; the game loop is its only mutator.
type Engine struct {
	rules Rules
	src   Source
	size  int

	// Row-major, cells[row*size+col]
	cells []uint32
	// Per-move merge marks, reset at the start of every move
	merged []bool
	score  uint64

	countWeights []int
	valueWeights []int
}

// NewEngine creates an empty board; call Start to place the initial tiles
func NewEngine(rules Rules, src Source) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if src == nil {
		return nil, errors.New("nil random source")
	}
	n := rules.Size
	return &Engine{
		rules:        rules,
		src:          src,
		size:         n,
		cells:        make([]uint32, n*n),
		merged:       make([]bool, n*n),
		countWeights: weights(rules.SpawnCounts),
		valueWeights: weights(rules.TileValues),
	}, nil
}

// NewEngineWithBoard creates an engine from explicit rows.
// The board size is taken from rows and overrides rules.Size.
func NewEngineWithBoard(rules Rules, src Source, rows [][]uint32) (*Engine, error) {
	rules.Size = len(rows)
	if rules.StartTiles > rules.Size*rules.Size {
		rules.StartTiles = rules.Size * rules.Size
	}
	e, err := NewEngine(rules, src)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != e.size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), e.size)
		}
		for c, v := range row {
			if v != 0 && !IsTile(v) {
				return nil, fmt.Errorf("cell (%d,%d) = %d: not a power of two >= 2", r, c, v)
			}
			e.cells[r*e.size+c] = v
		}
	}
	return e, nil
}

// Start places the configured number of initial tiles
func (e *Engine) Start() {
	e.spawn(e.rules.StartTiles)
}

// Move slides and merges all tiles toward d and spawns new tiles if anything changed
func (e *Engine) Move(d Direction) bool {
	moved := e.shift(d)
	if moved {
		e.SpawnRandomTile()
	}
	return moved
}

// shift applies the slide/merge pass without spawning
func (e *Engine) shift(d Direction) bool {
	n := e.size
	m := motions[d]
	rows := order(n, m.dRow)
	cols := order(n, m.dCol)
	clear(e.merged)

	moved := false
	for _, r := range rows {
		for _, c := range cols {
			v := e.cells[r*n+c]
			if v == 0 {
				continue
			}

			cr, cc := r, c
			for {
				nr, nc := cr+m.dRow, cc+m.dCol
				if nr < 0 || nr >= n || nc < 0 || nc >= n {
					break
				}
				cur, next := cr*n+cc, nr*n+nc

				if e.cells[next] == 0 {
					e.cells[next] = v
					e.cells[cur] = 0
					cr, cc = nr, nc
					moved = true
					continue
				}

				if e.cells[next] == v && v < LargestTile && !e.merged[next] {
					e.cells[next] = v * 2
					e.cells[cur] = 0
					e.score += uint64(v) * 2
					e.merged[next] = true
					moved = true
				}
				break
			}
		}
	}
	return moved
}

// SpawnRandomTile places one or more tiles on empty cells, count and values drawn
// from the rules' distributions. No-op on a full board.
func (e *Engine) SpawnRandomTile() {
	if e.EmptyCount() == 0 {
		return
	}
	count := e.rules.SpawnCounts[e.src.PickWeighted(e.countWeights)].Value
	e.spawn(int(count))
}

// spawn places up to count tiles at distinct empty positions
func (e *Engine) spawn(count int) {
	empty := e.emptyPositions()
	if count > len(empty) {
		count = len(empty)
	}
	for i := 0; i < count; i++ {
		k := e.src.Pick(len(empty))
		pos := empty[k]
		empty = append(empty[:k], empty[k+1:]...)
		e.cells[pos] = e.rules.TileValues[e.src.PickWeighted(e.valueWeights)].Value
	}
}

func (e *Engine) emptyPositions() []int {
	empty := make([]int, 0, len(e.cells))
	for i, v := range e.cells {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}

// HasMoves reports whether any move can change the board
func (e *Engine) HasMoves() bool {
	n := e.size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := e.cells[r*n+c]
			if v == 0 {
				return true
			}
			if v == LargestTile {
				continue
			}
			if c < n-1 && v == e.cells[r*n+c+1] {
				return true
			}
			if r < n-1 && v == e.cells[(r+1)*n+c] {
				return true
			}
		}
	}
	return false
}

// HasWon reports whether any tile reached the win threshold
func (e *Engine) HasWon() bool {
	top := e.MaxTile()
	if e.rules.WinStrict {
		return top > e.rules.WinThreshold
	}
	return top >= e.rules.WinThreshold
}

// MaxTile returns the largest cell value, 0 for an empty board
func (e *Engine) MaxTile() uint32 {
	var top uint32
	for _, v := range e.cells {
		if v > top {
			top = v
		}
	}
	return top
}

// EmptyCount returns the number of empty cells
func (e *Engine) EmptyCount() int {
	count := 0
	for _, v := range e.cells {
		if v == 0 {
			count++
		}
	}
	return count
}

// Size returns the board side length
func (e *Engine) Size() int { return e.size }

// At returns the value at (row, col)
func (e *Engine) At(row, col int) uint32 { return e.cells[row*e.size+col] }

// Score returns the accumulated merge points
func (e *Engine) Score() uint64 { return e.score }

// Rules returns the rules the engine was built with
func (e *Engine) Rules() Rules { return e.rules }

// Cells returns a row-major copy of the board
func (e *Engine) Cells() []uint32 {
	out := make([]uint32, len(e.cells))
	copy(out, e.cells)
	return out
}

// Rows returns a copy of the board as rows
func (e *Engine) Rows() [][]uint32 {
	rows := make([][]uint32, e.size)
	for r := range rows {
		rows[r] = make([]uint32, e.size)
		copy(rows[r], e.cells[r*e.size:(r+1)*e.size])
	}
	return rows
}

// String renders the board as space separated rows, for logs and test output
func (e *Engine) String() string {
	var sb strings.Builder
	for r := 0; r < e.size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < e.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(uint64(e.At(r, c)), 10))
		}
	}
	return sb.String()
}
