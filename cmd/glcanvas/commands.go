package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/glcanvas/internal/automation"
	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/export"
	"github.com/san-kum/glcanvas/internal/metrics"
	"github.com/san-kum/glcanvas/internal/session"
	"github.com/san-kum/glcanvas/internal/storage"
	"github.com/san-kum/glcanvas/internal/viz"
)

func listDemos(cmd *cobra.Command, args []string) error {
	reg := demos.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tSUMMARY")
	for _, name := range reg.List() {
		kind, _ := reg.Kind(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, kind, reg.Summary(name))
	}
	return w.Flush()
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s...\n", cfg.Demo)
	start := time.Now()

	rec, err := automation.Record(ctx, cfg, storage.New(dataDir), logger)
	if err != nil {
		return err
	}
	printRecorded(rec, cfg.FPS, time.Since(start))

	if rec.Err != nil && !errors.Is(rec.Err, context.Canceled) {
		return rec.Err
	}
	return nil
}

func printRecorded(rec *automation.Recorded, target float64, elapsed time.Duration) {
	if errors.Is(rec.Err, context.Canceled) {
		fmt.Println("interrupted")
	} else if rec.Err != nil {
		fmt.Printf("aborted: %v\n", rec.Err)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", rec.RunID)
	fmt.Printf("frames: %d (%d failed)\n", rec.Result.Frames, rec.Result.Failures)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults(target) {
		fmt.Printf("  %s: %.3f\n", m.Name(), rec.Result.Metrics[m.Name()])
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	recs, err := automation.RunScenario(ctx, sc, storage.New(dataDir), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tFRAMES\tFAILED\tMEAN FPS\tSTATUS")
	for i, rec := range recs {
		status := "ok"
		if rec.Err != nil {
			status = rec.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.1f\t%s\n",
			i+1, rec.RunID, rec.Result.Frames, rec.Result.Failures,
			rec.Result.Metrics["mean_fps"], status)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{Base: *cfg, Param: sweepParam, Values: sweepValues}
	results, err := automation.RunSweep(ctx, sweep, logger)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %s\n\n", sweepParam, cfg.Demo)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tFAILED\tMEAN FPS\tMIN FPS\tPOPULATION\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%.1f\t%.1f\t%.0f\n",
			r.Value, r.Frames, r.Failures,
			r.Metrics["mean_fps"], r.Metrics["min_fps"], r.Metrics["final_population"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDEMO\tTIME\tSIZE\tFRAMES\tFAILED\tFORMAT\tMEAN FPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%s\t%.1f\n",
			run.ID,
			run.Demo,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Failures,
			run.Format,
			run.Metrics["mean_fps"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("demo: %s\n", meta.Demo)
	fmt.Printf("samples: %d\n\n", len(samples))

	rates := make([]float64, 0, len(samples))
	points := make([]export.Point, 0, len(samples))
	pop := make([]float64, len(samples))
	for i, s := range samples {
		if s.FPSValid {
			rates = append(rates, s.FPS)
			points = append(points, export.Point{X: s.Time, Y: s.FPS})
		}
		pop[i] = float64(s.Population)
	}

	if len(rates) > 0 {
		fmt.Println(asciigraph.Plot(rates,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("frame rate (fps)"),
		))
		fmt.Println()
	}

	if pop[len(pop)-1] > 0 {
		fmt.Println(asciigraph.Plot(pop,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("population"),
		))
		fmt.Println()
	}

	if svgOut != "" {
		svg := export.SeriesToSVG(points, 800, 300, "#00ff00")
		if svg == "" {
			return fmt.Errorf("not enough defined frame rates for svg")
		}
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	if !withSample {
		return storage.ExportJSON(os.Stdout, meta, nil)
	}
	samples, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"frame", "time_ms", "dt_ms", "fps", "population"}); err != nil {
		return err
	}
	for _, s := range samples {
		rate := ""
		if s.FPSValid {
			rate = fmt.Sprintf("%.3f", s.FPS)
		}
		row := []string{
			fmt.Sprint(s.Index),
			fmt.Sprintf("%.3f", s.Time),
			fmt.Sprintf("%.3f", s.DT),
			rate,
			fmt.Sprint(s.Population),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// starter builds a fresh demo and session on every call, so the live
// view can restart it.
func starter(reg *demos.Registry, cfg *config.Config) viz.Starter {
	return func() (*session.Session, error) {
		d, err := reg.Get(cfg.Demo, automation.Params(cfg))
		if err != nil {
			return nil, err
		}
		return session.New(d, logger).Start(session.Config{
			Frames:         cfg.Frames,
			FPS:            cfg.FPS,
			Realtime:       true,
			MaxFrameErrors: cfg.MaxFrameErrors,
		})
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("frames") && preset == "" && configFile == "" {
		cfg.Frames = 0
	}

	m, err := viz.NewModel(cfg.Demo, starter(demos.NewRegistry(), cfg), cfg.FPS)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func benchDemo(cmd *cobra.Command, args []string) error {
	name := args[0]
	reg := demos.NewRegistry()
	if _, ok := reg.Kind(name); !ok {
		return fmt.Errorf("unknown demo: %s", name)
	}

	sizes := [][2]int{{320, 240}, {800, 600}, {1280, 720}}
	cfg := session.Config{Frames: frames, FPS: config.DefaultFPS, MaxFrameErrors: config.DefaultMaxFrameErrors}
	newMetrics := func() []metrics.Metric { return metrics.Defaults(cfg.FPS) }

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s (%d runs x %d frames)\n\n", name, benchRuns, frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tFRAMES\tTIME\tFRAMES/SEC\tFAILED\tPOPULATION")

	for _, size := range sizes {
		build := func(s int64) (demos.Demo, error) {
			p := demos.DefaultParams()
			p.Width, p.Height, p.Seed = size[0], size[1], s
			return reg.Get(name, p)
		}

		start := time.Now()
		results, err := session.NewEnsemble(build, newMetrics, benchRuns, seed, logger).Run(ctx, cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		total, failed := 0, 0
		for _, r := range results {
			total += r.Frames
			failed += r.Failures
		}

		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\t%d\t%.0f\n",
			size[0], size[1], total, elapsed.Round(time.Millisecond),
			float64(total)/elapsed.Seconds(), failed,
			session.Mean(results, "final_population"))
	}

	return w.Flush()
}
