package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/lixenwraith/dois-mil/audio"
	"github.com/lixenwraith/dois-mil/config"
	"github.com/lixenwraith/dois-mil/game"
	"github.com/lixenwraith/dois-mil/grid"
	"github.com/lixenwraith/dois-mil/render"
	"github.com/lixenwraith/dois-mil/terminal"
)

var version = "dev"

// options is the parsed command line
type options struct {
	cfg     config.Config
	debug   bool
	version bool
	// sizeFallback is set when a positional size could not be used
	sizeFallback string
}

func main() {
	// Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDOIS-MIL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Exited with error: %s.\n", err)
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("dois-mil %s\n", version)
		return
	}

	logger, logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts, logger); err != nil {
		logger.Error("exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Exited with error: %s.\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

// parseArgs merges defaults, the config file, flags and the positional size, in that order
func parseArgs(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("dois-mil", flag.ContinueOnError)
	fs.SetOutput(output)

	def := config.Default()
	var (
		size       = fs.Int("size", def.Size, "board side length")
		seed       = fs.Uint64("seed", def.Seed, "random seed, 0 for time-based")
		configPath = fs.String("config", "", "HCL config file")
		color      = fs.String("color", def.Display.Color, "color mode: auto, 256, truecolor")
		sound      = fs.Bool("sound", def.Sound.Enabled, "play sound cues")
		volume     = fs.Float64("volume", def.Sound.Volume, "sound volume, 0.0 to 1.0")
		win        = fs.Uint64("win", uint64(def.Win.Threshold), "winning tile value")
		winStrict  = fs.Bool("win-strict", def.Win.Strict, "require a tile strictly above the winning value")
		startTiles = fs.Int("start-tiles", def.Spawn.StartTiles, "tiles placed when the game starts")
		debugLog   = fs.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
		showVer    = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: dois-mil [flags] [size]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{debug: *debugLog, version: *showVer}
	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath, cfg); err != nil {
			return options{}, err
		}
	}

	if *win > math.MaxUint32 {
		return options{}, fmt.Errorf("win threshold %d: must be at most %d", *win, uint32(math.MaxUint32))
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Size = *size
		case "seed":
			cfg.Seed = *seed
		case "color":
			cfg.Display.Color = *color
		case "sound":
			cfg.Sound.Enabled = *sound
		case "volume":
			cfg.Sound.Volume = *volume
		case "win":
			cfg.Win.Threshold = uint32(*win)
		case "win-strict":
			cfg.Win.Strict = *winStrict
		case "start-tiles":
			cfg.Spawn.StartTiles = *startTiles
		}
	})

	if fs.NArg() > 0 {
		n, err := strconv.Atoi(fs.Arg(0))
		if err != nil || n < 2 {
			opts.sizeFallback = fs.Arg(0)
			n = grid.DefaultSize
		}
		cfg.Size = n
	}

	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	opts.cfg = cfg
	return opts, nil
}

func run(opts options, logger *slog.Logger) error {
	cfg := opts.cfg
	if opts.sizeFallback != "" {
		logger.Warn("invalid size argument, using default", "arg", opts.sizeFallback, "size", grid.DefaultSize)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	logger.Info("starting", "version", version, "config", cfg.String())

	mode, err := cfg.ColorMode()
	if err != nil {
		return err
	}

	engine, err := grid.NewEngine(cfg.Rules(), grid.NewRandSource(cfg.Seed))
	if err != nil {
		return err
	}
	engine.Start()

	player := newPlayer(cfg.Sound, logger)
	defer player.Close()

	term := terminal.New(mode)

	// SIGTERM/SIGHUP end the loop through the normal close path so the terminal is restored
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logger.Info("signal received", "signal", sig.String())
		term.PostEvent(terminal.Event{Type: terminal.EventClosed})
	}()

	return terminal.Run(term, func(t terminal.Terminal) error {
		session := game.NewSession(engine, render.NewRenderer(t.ColorMode()), t, player, logger)
		return session.Run()
	})
}

// newPlayer opens the speaker when sound is enabled; failure leaves the game silent
func newPlayer(cfg config.SoundConfig, logger *slog.Logger) audio.Player {
	if !cfg.Enabled {
		return audio.Silent{}
	}
	sm := audio.NewSoundManager(cfg.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio initialization failed, continuing without sound", "error", err)
		return audio.Silent{}
	}
	return sm
}
