// Package config holds the runtime settings of a game and loads them from HCL files.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/dois-mil/grid"
	"github.com/lixenwraith/dois-mil/terminal"
)

// Config is the merged result of defaults, the config file and the command line
type Config struct {
	Size int
	// Seed drives tile placement; 0 selects a time-based seed
	Seed uint64

	Win     WinConfig
	Spawn   SpawnConfig
	Display DisplayConfig
	Sound   SoundConfig
}

type WinConfig struct {
	Threshold uint32
	Strict    bool
}

type SpawnConfig struct {
	StartTiles   int
	CountWeights []grid.Weighted
	TileWeights  []grid.Weighted
}

type DisplayConfig struct {
	// Color is "auto", "256" or "truecolor"
	Color string
}

type SoundConfig struct {
	Enabled bool
	Volume  float64
}

// Default returns the classic game settings
func Default() Config {
	rules := grid.DefaultRules()
	return Config{
		Size: rules.Size,
		Win: WinConfig{
			Threshold: rules.WinThreshold,
			Strict:    rules.WinStrict,
		},
		Spawn: SpawnConfig{
			StartTiles:   rules.StartTiles,
			CountWeights: rules.SpawnCounts,
			TileWeights:  rules.TileValues,
		},
		Display: DisplayConfig{Color: "auto"},
		Sound:   SoundConfig{Enabled: false, Volume: 0.5},
	}
}

// Rules converts the game settings into engine rules
func (c Config) Rules() grid.Rules {
	return grid.Rules{
		Size:         c.Size,
		WinThreshold: c.Win.Threshold,
		WinStrict:    c.Win.Strict,
		StartTiles:   c.Spawn.StartTiles,
		SpawnCounts:  c.Spawn.CountWeights,
		TileValues:   c.Spawn.TileWeights,
	}
}

// ColorMode resolves the display color setting
func (c Config) ColorMode() (terminal.ColorMode, error) {
	return terminal.ParseColorMode(c.Display.Color)
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error

	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ColorMode(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound volume %g: must be in [0, 1]", c.Sound.Volume))
	}

	return errors.Join(errs...)
}

// String renders the settings for logs
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "size=%d seed=%d win=%d", c.Size, c.Seed, c.Win.Threshold)
	if c.Win.Strict {
		b.WriteString(" strict")
	}
	fmt.Fprintf(&b, " start=%d color=%s sound=%t", c.Spawn.StartTiles, c.Display.Color, c.Sound.Enabled)
	return b.String()
}
