// Package audio synthesizes short feedback cues and plays them through the speaker.
package audio

import "time"

// Cue identifies a game event with a sound
type Cue int

const (
	CueMerge Cue = iota // Tiles merged
	CueWin              // Win threshold reached
	CueLose             // No moves left
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueMerge:
		return "merge"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	}
	return "unknown"
}

// Cue timing
const (
	mergeDuration = 70 * time.Millisecond
	mergeAttack   = 5 * time.Millisecond
	mergeRelease  = 50 * time.Millisecond

	winNote1Duration = 120 * time.Millisecond
	winNote2Duration = 260 * time.Millisecond
	winAttack        = 5 * time.Millisecond
	winNote1Release  = 60 * time.Millisecond
	winNote2Release  = 200 * time.Millisecond

	loseDuration = 400 * time.Millisecond
	loseAttack   = 10 * time.Millisecond
	loseRelease  = 300 * time.Millisecond
)

// Player plays cues without blocking the caller
type Player interface {
	// Play queues cue; tile is the largest tile involved and scales the pitch of merges
	Play(cue Cue, tile uint32)
	Close()
}

// Silent discards every cue
type Silent struct{}

func (Silent) Play(Cue, uint32) {}
func (Silent) Close()           {}
