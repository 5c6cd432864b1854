package grid

import "fmt"

// Direction selects the traversal and merge orientation of a move
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in declaration order
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection maps a direction name back to its value
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// motion describes one direction: the unit step toward the far edge.
// Exactly one of dRow, dCol is nonzero.
type motion struct {
	dRow, dCol int
}

var motions = [4]motion{
	Up:    {dRow: -1},
	Down:  {dRow: +1},
	Left:  {dCol: -1},
	Right: {dCol: +1},
}

// order returns indices 0..n-1 ordered so the far edge along step comes first.
// A zero step (the axis the motion does not travel) keeps ascending order.
func order(n, step int) []int {
	idx := make([]int, n)
	for i := range idx {
		if step > 0 {
			idx[i] = n - 1 - i
		} else {
			idx[i] = i
		}
	}
	return idx
}
