package grid

import (
	"testing"
)

// scriptedSource replays a fixed sequence of picks shared by Pick and PickWeighted
type scriptedSource struct {
	t     *testing.T
	picks []int
}

func newScripted(t *testing.T, picks ...int) *scriptedSource {
	return &scriptedSource{t: t, picks: picks}
}

func (s *scriptedSource) next() int {
	s.t.Helper()
	if len(s.picks) == 0 {
		s.t.Fatal("scripted source exhausted")
	}
	v := s.picks[0]
	s.picks = s.picks[1:]
	return v
}

func (s *scriptedSource) Pick(n int) int {
	s.t.Helper()
	v := s.next()
	if v < 0 || v >= n {
		s.t.Fatalf("scripted pick %d out of range [0,%d)", v, n)
	}
	return v
}

func (s *scriptedSource) PickWeighted(weights []int) int {
	s.t.Helper()
	v := s.next()
	if v < 0 || v >= len(weights) {
		s.t.Fatalf("scripted weighted pick %d out of range [0,%d)", v, len(weights))
	}
	return v
}

// forbiddenSource fails the test if any randomness is consumed
type forbiddenSource struct{ t *testing.T }

func (s forbiddenSource) Pick(int) int {
	s.t.Fatal("unexpected Pick")
	return 0
}

func (s forbiddenSource) PickWeighted([]int) int {
	s.t.Fatal("unexpected PickWeighted")
	return 0
}

func mustBoard(t *testing.T, src Source, rows [][]uint32) *Engine {
	t.Helper()
	e, err := NewEngineWithBoard(DefaultRules(), src, rows)
	if err != nil {
		t.Fatalf("NewEngineWithBoard: %v", err)
	}
	return e
}

// randomRows builds a size x size board, roughly 40% empty, tiles 2..16
func randomRows(src *RandSource, size int) [][]uint32 {
	rows := make([][]uint32, size)
	for r := range rows {
		rows[r] = make([]uint32, size)
		for c := range rows[r] {
			if src.Pick(5) < 2 {
				continue
			}
			rows[r][c] = 2 << src.Pick(4)
		}
	}
	return rows
}

func mass(e *Engine) uint64 {
	var sum uint64
	for _, v := range e.Cells() {
		sum += uint64(v)
	}
	return sum
}

func anyMerged(e *Engine) bool {
	for _, m := range e.merged {
		if m {
			return true
		}
	}
	return false
}
