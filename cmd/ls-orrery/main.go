// Command ls-orrery is an animated terminal model of the solar system.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/report"
	"github.com/litescript/ls-orrery/internal/starfield"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	snapshotPath  string
	miniMapMode   bool
	simulateFor   time.Duration
	watchInterval time.Duration
)

// toneLength is how long each body's cue rings.
const toneLength = 1500 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags default to the environment, so they override it
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file (TUI logs are discarded otherwise)")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Initial speed multiplier (0.1-10)")
	flag.Float64Var(&cfg.Zoom, "zoom", cfg.Zoom, "Initial zoom factor (0.5-2.5)")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play audio cues")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Audio volume (0-1)")
	flag.IntVar(&cfg.Stars, "stars", cfg.Stars, "Number of background stars")
	flag.Uint64Var(&cfg.StarSeed, "star-seed", cfg.StarSeed, "Starfield seed (0 = random)")
	flag.DurationVar(&cfg.Frame, "frame", cfg.Frame, "Frame interval (e.g., 33ms)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a text summary instead of the TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&miniMapMode, "mini-map", false, "Print an ASCII map of the planets")
	flag.DurationVar(&simulateFor, "at", 0, "Simulated time before headless output (e.g., 2.5s)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval, animating in real time")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || snapshotPath != "" || miniMapMode || watchInterval > 0 || !isTTY

	logger, err := newLogger(cfg, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	loop, orbits, params, err := buildSystem(cfg.StateConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if headless {
		// Piped output with no mode selected gets the summary
		if !summaryMode && snapshotPath == "" && !miniMapMode {
			summaryMode = true
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		if err := runHeadless(ctx, loop, orbits, params, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	out := audio.NewOutput(cfg.Volume, logger.Named("audio"))
	if err := out.Init(); err != nil {
		logger.Warn("audio disabled: %v", err)
	}
	defer out.Close()

	dir := catalog.NewDirectory(func(b catalog.Body) audio.Resource {
		return out.Tone(b.ToneHz, toneLength)
	})
	sound := audio.NewDispatcher(dir, params, logger.Named("audio"))
	ctrl := control.New(params, orbits, dir, sound, logger.Named("control"))

	seed := cfg.StarSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	model := ui.New(ctrl, loop, orbits, ui.Options{
		Frame: cfg.Frame,
		Stars: starfield.Generate(cfg.Stars, seed),
		Log:   logger.Named("ui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	logger.Info("starting %s, %d bodies", version.String(), orbits.Len())

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	sound.StopAll()
}

// newLogger writes to -log-file when given. Without one, headless runs log
// to stderr and the TUI discards logs so the alternate screen stays clean.
func newLogger(cfg config.Config, headless bool) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		return logging.OpenFile(cfg.LogFile, level)
	}
	if headless {
		return logging.New(level), nil
	}
	return logging.Discard(), nil
}

// buildSystem registers every catalog body on a fresh scheduler.
func buildSystem(sc state.Config) (*anim.Loop, *orbit.Registry, *state.Params, error) {
	params := state.NewParams(sc)
	loop := anim.NewLoop()
	orbits := orbit.NewRegistry(loop)

	for _, b := range catalog.Bodies {
		if _, err := orbits.Create(b.Name, b.Distance, b.Period, b.Parent, params.Speed()); err != nil {
			return nil, nil, nil, fmt.Errorf("register %s: %w", b.Name, err)
		}
	}
	return loop, orbits, params, nil
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, loop *anim.Loop, orbits *orbit.Registry, params *state.Params, logger *logging.Logger) error {
	simulated := simulateFor
	if simulated < 0 {
		simulated = 0
	}
	loop.Advance(simulated)

	outputOnce := func() error {
		snap := params.Snapshot()

		// Export JSON if requested
		if snapshotPath != "" {
			export := report.ExportSnapshot(orbits, snap, simulated, time.Now().UTC())
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
				logger.Debug("snapshot written to %s", snapshotPath)
			}
		}

		// Print summary table if requested
		if summaryMode {
			report.WriteSummaryTable(os.Stdout, orbits, snap, simulated)
		}

		if miniMapMode {
			fmt.Println()
			report.WriteMiniMap(os.Stdout, orbits, report.DefaultMiniMapConfig())
		}
		return nil
	}

	// Single run
	if watchInterval <= 0 {
		return outputOnce()
	}

	// Watch mode: animate in real time and repeat at interval
	if err := outputOnce(); err != nil {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			loop.Advance(dt)
			simulated += dt

			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
