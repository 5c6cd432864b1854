// Package game runs the interactive loop: it reads terminal events, drives the grid
// engine and redraws the board after every change.
package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lixenwraith/dois-mil/audio"
	"github.com/lixenwraith/dois-mil/gameerr"
	"github.com/lixenwraith/dois-mil/grid"
	"github.com/lixenwraith/dois-mil/render"
	"github.com/lixenwraith/dois-mil/terminal"
)

// Board is the engine surface the session drives
type Board interface {
	render.BoardView
	Move(d grid.Direction) bool
	MaxTile() uint32
}

// Screen is the terminal surface the session needs
type Screen interface {
	Size() (width, height int)
	Output() io.Writer
	PollEvent() terminal.Event
}

// Session is one game from first frame to quit
type Session struct {
	board    Board
	renderer *render.Renderer
	screen   Screen
	player   audio.Player
	logger   *slog.Logger

	// fits is false while the fallback notice is displayed
	fits bool
	won  bool
	over bool
}

// NewSession wires a started board to a screen. A nil player plays nothing.
func NewSession(board Board, renderer *render.Renderer, screen Screen, player audio.Player, logger *slog.Logger) *Session {
	if player == nil {
		player = audio.Silent{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		board:    board,
		renderer: renderer,
		screen:   screen,
		player:   player,
		logger:   logger,
		fits:     true,
		won:      board.HasWon(),
		over:     !board.HasMoves(),
	}
}

// Run draws the board and processes events until quit, close or failure.
// Quit and a closed input return nil; input and output failures return an *gameerr.IOError.
func (s *Session) Run() error {
	s.logger.Info("game started", "size", s.board.Size())

	if err := s.draw(); err != nil {
		s.logger.Error("render failed", "error", err)
		return err
	}

	for {
		ev := s.screen.PollEvent()
		act := Translate(ev)

		switch act.Kind {
		case ActionQuit:
			s.logger.Info("quit", "score", s.board.Score(), "max_tile", s.board.MaxTile())
			return nil

		case ActionClose:
			s.logger.Info("input closed", "score", s.board.Score())
			return nil

		case ActionError:
			err := gameerr.IO("read input", ev.Err)
			s.logger.Error("input failed", "error", err)
			return err

		case ActionRedraw:
			s.logger.Debug("resize", "width", ev.Width, "height", ev.Height)

		case ActionMove:
			if !s.move(act.Dir) {
				continue
			}

		default:
			continue
		}

		if err := s.draw(); err != nil {
			s.logger.Error("render failed", "error", err)
			return err
		}
	}
}

// move applies d and reports whether the board changed
func (s *Session) move(d grid.Direction) bool {
	// Board hidden behind the size notice, or game over
	if !s.fits || !s.board.HasMoves() {
		return false
	}

	before := s.board.Score()
	moved := s.board.Move(d)
	s.logger.Debug("move", "direction", d, "moved", moved, "score", s.board.Score())
	if !moved {
		return false
	}

	if s.board.Score() > before {
		s.player.Play(audio.CueMerge, s.board.MaxTile())
	}
	if !s.won && s.board.HasWon() {
		s.won = true
		s.logger.Info("game won", "score", s.board.Score(), "max_tile", s.board.MaxTile())
		s.player.Play(audio.CueWin, s.board.MaxTile())
	}
	if !s.over && !s.board.HasMoves() {
		s.over = true
		s.logger.Info("game lost", "score", s.board.Score(), "max_tile", s.board.MaxTile())
		s.player.Play(audio.CueLose, s.board.MaxTile())
	}
	return true
}

// draw renders the board, falling back to a notice when it does not fit
func (s *Session) draw() error {
	w, h := s.screen.Size()
	out := s.screen.Output()

	err := s.renderer.Render(out, s.board, w, h)
	var sizeErr *gameerr.SizeError
	if !errors.As(err, &sizeErr) {
		s.fits = err == nil
		return err
	}

	if s.fits {
		s.logger.Warn("terminal too small", "width", w, "height", h,
			"need_width", sizeErr.NeedWidth, "need_height", sizeErr.NeedHeight)
	}
	s.fits = false
	msg := fmt.Sprintf("Enlarge terminal to %dx%d", sizeErr.NeedWidth, sizeErr.NeedHeight)
	return s.renderer.RenderNotice(out, msg, w, h)
}
