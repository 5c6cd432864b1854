package grid

import (
	"errors"
	"fmt"
)

const (
	DefaultSize         = 4
	DefaultWinThreshold = 2048
	DefaultStartTiles   = 2
)

const (
	// LargestTile is the top cell value; two of them cannot merge in a uint32 cell
	LargestTile uint32 = 1 << 31

	// MaxSpawnValue is the largest value a spawn distribution may place
	MaxSpawnValue uint32 = 1 << 30

	// MaxWeight bounds a single distribution weight so weight sums stay in range
	MaxWeight = 1 << 20
)

// Weighted pairs a value with its relative probability
type Weighted struct {
	Value  uint32
	Weight int
}

// Rules are the per-game parameters fixed at construction
type Rules struct {
	Size int

	// WinThreshold is the tile value that wins the game.
	// WinStrict requires a tile strictly greater than the threshold.
	WinThreshold uint32
	WinStrict    bool

	// StartTiles is the number of tiles placed by Start
	StartTiles int

	// SpawnCounts is the distribution of how many tiles appear after a move
	SpawnCounts []Weighted

	// TileValues is the distribution of spawned tile values
	TileValues []Weighted
}

// DefaultRules returns the classic 4x4 configuration
func DefaultRules() Rules {
	return Rules{
		Size:         DefaultSize,
		WinThreshold: DefaultWinThreshold,
		StartTiles:   DefaultStartTiles,
		SpawnCounts:  []Weighted{{Value: 1, Weight: 3}, {Value: 2, Weight: 1}},
		TileValues:   []Weighted{{Value: 2, Weight: 2}, {Value: 4, Weight: 1}},
	}
}

// Validate reports the first inconsistency in r
func (r Rules) Validate() error {
	if r.Size < 2 {
		return fmt.Errorf("grid size %d: must be at least 2", r.Size)
	}
	if r.WinThreshold == 0 {
		return errors.New("win threshold must be positive")
	}
	if r.StartTiles < 1 || r.StartTiles > r.Size*r.Size {
		return fmt.Errorf("start tiles %d: must be in [1, %d]", r.StartTiles, r.Size*r.Size)
	}
	if len(r.SpawnCounts) == 0 {
		return errors.New("spawn counts: empty distribution")
	}
	for _, c := range r.SpawnCounts {
		if c.Value < 1 {
			return fmt.Errorf("spawn count %d: must be at least 1", c.Value)
		}
		if c.Weight <= 0 || c.Weight > MaxWeight {
			return fmt.Errorf("spawn count %d: weight %d must be in [1, %d]", c.Value, c.Weight, MaxWeight)
		}
	}
	if len(r.TileValues) == 0 {
		return errors.New("tile values: empty distribution")
	}
	for _, v := range r.TileValues {
		if !IsTile(v.Value) {
			return fmt.Errorf("tile value %d: must be a power of two >= 2", v.Value)
		}
		if v.Value > MaxSpawnValue {
			return fmt.Errorf("tile value %d: must be at most %d", v.Value, MaxSpawnValue)
		}
		if v.Weight <= 0 || v.Weight > MaxWeight {
			return fmt.Errorf("tile value %d: weight %d must be in [1, %d]", v.Value, v.Weight, MaxWeight)
		}
	}
	return nil
}

// IsTile reports whether v is a legal nonzero cell value (2^k, k >= 1)
func IsTile(v uint32) bool {
	return v >= 2 && v&(v-1) == 0
}

// weights extracts the weight column for Source.PickWeighted
func weights(ws []Weighted) []int {
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = w.Weight
	}
	return out
}
