package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/san-kum/glcanvas/internal/automation"
	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/viz"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string

	width          int
	height         int
	frames         int
	fps            float64
	seed           int64
	format         string
	captureEvery   int
	realtime       bool
	maxFrameErrors int

	lineMode      string
	populationCap int
	boundaryTop   float64
	spawnTop      float64
	timeScaled    bool

	benchRuns   int
	sweepParam  string
	sweepValues []float64
	withSample  bool
	svgOut      string
)

var logger = slog.Default()

// main registers the commands, starts the demo picker when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "glcanvas",
		Short:         "offscreen canvas and webgl demos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glcanvas", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	demosCmd := &cobra.Command{
		Use:   "demos",
		Short: "list available demos",
		RunE:  listDemos,
	}

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "run a demo offscreen and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemo,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "frame capture format (png, webp, gif, none)")
	runCmd.Flags().IntVar(&captureEvery, "capture-every", config.DefaultCaptureEvery, "capture every nth frame")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames on the wall clock")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frame rate and population of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the frame-rate series as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withSample, "samples", false, "include per-frame samples")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-frame samples as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [demo]",
		Short: "run a demo in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [demo]",
		Short: "list available presets for a demo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for demo: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [demo]",
		Short: "benchmark a demo across canvas sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchDemo,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 120, "frames per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "parallel runs per size, one seed each")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "first seed")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "record every run of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [demo]",
		Short: "run a demo once per value of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "population_cap", fmt.Sprintf("parameter to sweep %v", automation.SweepParams()))
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{100, 500, 1000, 5000}, "values to run")

	rootCmd.AddCommand(demosCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, liveCmd, presetsCmd, benchCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "canvas width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "canvas height")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run (live: 0 runs until quit)")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&maxFrameErrors, "max-frame-errors", config.DefaultMaxFrameErrors, "consecutive failing frames before abort (0 = never)")
	cmd.Flags().StringVar(&lineMode, "line-mode", config.DefaultLineMode, "primitive mode for draw_line")
	cmd.Flags().IntVar(&populationCap, "cap", config.DefaultPopulationCap, "population cap for canvas_stress")
	cmd.Flags().Float64Var(&boundaryTop, "boundary-top", config.DefaultBoundaryTop, "top reflection boundary for canvas_stress")
	cmd.Flags().Float64Var(&spawnTop, "spawn-top", config.DefaultSpawnTop, "top of the spawn band for canvas_stress")
	cmd.Flags().BoolVar(&timeScaled, "time-scaled", false, "scale canvas_stress velocities by frame time")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveConfig layers defaults, the preset, the config file and the
// flags the user set explicitly, in that order.
func resolveConfig(cmd *cobra.Command, demo string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Demo = demo

	if preset != "" {
		p := config.GetPreset(demo, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(demo))
		}
		cfg.Overlay(p)
	}

	if configFile != "" {
		o, err := config.ReadOverrides(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Overlay(o)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("capture-every") {
		cfg.CaptureEvery = captureEvery
	}
	if flags.Changed("realtime") {
		cfg.Realtime = realtime
	}
	if flags.Changed("max-frame-errors") {
		cfg.MaxFrameErrors = maxFrameErrors
	}
	if flags.Changed("line-mode") {
		cfg.Params.LineMode = lineMode
	}
	if flags.Changed("cap") {
		cfg.Params.PopulationCap = populationCap
	}
	if flags.Changed("boundary-top") {
		cfg.Params.BoundaryTop = boundaryTop
	}
	if flags.Changed("spawn-top") {
		cfg.Params.SpawnTop = spawnTop
	}
	if flags.Changed("time-scaled") {
		cfg.Params.TimeScaled = timeScaled
	}

	// the demo named on the command line wins over the one in a config file
	cfg.Demo = demo

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPicker() error {
	reg := demos.NewRegistry()
	items := make([]viz.PickerItem, 0)
	for _, name := range reg.List() {
		items = append(items, viz.PickerItem{Name: name, Summary: reg.Summary(name)})
	}

	cfg := config.DefaultConfig()
	launch := func(name string) (viz.Model, error) {
		c := *cfg
		c.Demo = name
		return viz.NewModel(name, starter(reg, &c), c.FPS)
	}

	_, err := tea.NewProgram(viz.NewPicker(items, launch), tea.WithAltScreen()).Run()
	return err
}
