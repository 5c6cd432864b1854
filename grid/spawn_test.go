package grid

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpawnFullBoardIsNoop(t *testing.T) {
	rows := [][]uint32{{2, 4}, {8, 16}}
	e := mustBoard(t, forbiddenSource{t}, rows)

	e.SpawnRandomTile()

	if diff := cmp.Diff(rows, e.Rows()); diff != "" {
		t.Errorf("full board changed (-want +got):\n%s", diff)
	}
}

func TestSpawnNeverOverwrites(t *testing.T) {
	boardSrc := NewRandSource(7)
	for i := 0; i < 500; i++ {
		rows := randomRows(boardSrc, 4)
		e := mustBoard(t, NewRandSource(uint64(i)), rows)
		emptyBefore := e.EmptyCount()
		before := e.Cells()

		e.SpawnRandomTile()

		placed := 0
		for idx, v := range e.Cells() {
			if before[idx] != 0 {
				if v != before[idx] {
					t.Fatalf("iteration %d: cell %d overwritten %d -> %d", i, idx, before[idx], v)
				}
				continue
			}
			if v != 0 {
				placed++
				if v != 2 && v != 4 {
					t.Fatalf("iteration %d: spawned value %d", i, v)
				}
			}
		}

		want := min(1, emptyBefore)
		if placed < want || placed > min(2, emptyBefore) {
			t.Fatalf("iteration %d: placed %d tiles with %d empty cells", i, placed, emptyBefore)
		}
	}
}

func TestSpawnCountCappedByEmptyCells(t *testing.T) {
	// Count index 1 selects two tiles but only one cell is free
	src := newScripted(t, 1, 0, 1)
	e := mustBoard(t, src, [][]uint32{{2, 4}, {8, 0}})

	e.SpawnRandomTile()

	if e.At(1, 1) != 4 {
		t.Errorf("want 4 at (1,1), got\n%s", e)
	}
	if len(src.picks) != 0 {
		t.Errorf("unconsumed picks %v", src.picks)
	}
}

func TestSpawnPositionsWithoutReplacement(t *testing.T) {
	// Two tiles: first takes empty index 0, second index 0 of the remaining cells
	src := newScripted(t, 1, 0, 0, 0, 1)
	e := mustBoard(t, src, [][]uint32{{0, 0}, {0, 2}})

	e.SpawnRandomTile()

	want := [][]uint32{{2, 4}, {0, 2}}
	if diff := cmp.Diff(want, e.Rows()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestStartPlacesConfiguredTiles(t *testing.T) {
	for _, start := range []int{1, 2, 5} {
		rules := DefaultRules()
		rules.StartTiles = start
		e, err := NewEngine(rules, NewRandSource(3))
		if err != nil {
			t.Fatal(err)
		}

		e.Start()

		if got := 16 - e.EmptyCount(); got != start {
			t.Errorf("StartTiles=%d placed %d tiles", start, got)
		}
		if e.Score() != 0 {
			t.Errorf("start changed score to %d", e.Score())
		}
	}
}

func TestAlwaysOneSpawnRule(t *testing.T) {
	rules := DefaultRules()
	rules.SpawnCounts = []Weighted{{Value: 1, Weight: 1}}
	e, err := NewEngine(rules, NewRandSource(11))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 16; i++ {
		before := e.EmptyCount()
		e.SpawnRandomTile()
		if before-e.EmptyCount() != 1 {
			t.Fatalf("spawn %d placed %d tiles", i, before-e.EmptyCount())
		}
	}
}

func TestRandSourceWeighted(t *testing.T) {
	src := NewRandSource(99)
	const samples = 30000

	hits := 0
	for i := 0; i < samples; i++ {
		if src.PickWeighted([]int{2, 1}) == 0 {
			hits++
		}
	}

	ratio := float64(hits) / samples
	if math.Abs(ratio-2.0/3.0) > 0.03 {
		t.Errorf("weight 2:1 produced ratio %.3f", ratio)
	}
}

func TestRandSourceDeterministic(t *testing.T) {
	a, b := NewRandSource(5), NewRandSource(5)
	for i := 0; i < 100; i++ {
		if x, y := a.Pick(16), b.Pick(16); x != y {
			t.Fatalf("pick %d diverged: %d != %d", i, x, y)
		}
		if x, y := a.PickWeighted([]int{3, 1}), b.PickWeighted([]int{3, 1}); x != y {
			t.Fatalf("weighted pick %d diverged: %d != %d", i, x, y)
		}
	}
}
