package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/physdemo/internal/analysis"
	"github.com/san-kum/physdemo/internal/automation"
	"github.com/san-kum/physdemo/internal/config"
	"github.com/san-kum/physdemo/internal/demo"
	"github.com/san-kum/physdemo/internal/export"
	"github.com/san-kum/physdemo/internal/storage"
	"github.com/san-kum/physdemo/internal/viz"
	"github.com/spf13/cobra"
)

var (
	env       config.Env
	dataDir   string
	themeName string
	width     int
	height    int
	frameRate int
	// slider value sources
	setFlags   []string
	configFile string
	preset     string
	// file output
	outFile   string
	outWidth  float64
	outHeight float64
	// sweep and check
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	seed       int64
	// analyze
	seriesName string
)

var registry = demo.NewRegistry()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:               "physdemo",
		Short:             "interactive physics demonstrations",
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(cmd.Context(), registry, liveOptions())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run archive directory (env PHYSDEMO_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme (env PHYSDEMO_THEME)")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "chart width in columns (env PHYSDEMO_WIDTH)")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "chart height in rows (env PHYSDEMO_HEIGHT)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list demos",
		Args:  cobra.NoArgs,
		RunE:  listDemos,
	}

	paramsCmd := &cobra.Command{
		Use:   "params [demo]",
		Short: "list the sliders of a demo",
		Args:  cobra.ExactArgs(1),
		RunE:  listParams,
	}

	showCmd := &cobra.Command{
		Use:   "show [demo]",
		Short: "render a demo as text",
		Args:  cobra.ExactArgs(1),
		RunE:  showDemo,
	}
	valueFlags(showCmd)

	liveCmd := &cobra.Command{
		Use:   "live [demo]",
		Short: "explore a demo with sliders",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	valueFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "animation frame rate (env PHYSDEMO_FPS)")

	plotCmd := &cobra.Command{
		Use:   "plot [demo]",
		Short: "render a demo to an image or document (png, svg, pdf, eps, jpg, tif)",
		Args:  cobra.ExactArgs(1),
		RunE:  plotDemo,
	}
	valueFlags(plotCmd)
	outputFlags(plotCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [demo]",
		Short: "write demo series as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	valueFlags(exportCSVCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [demo]",
		Short: "write the demo figure as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	valueFlags(exportJSONCmd)

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "compute a demo and archive the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemo,
	}
	valueFlags(runCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "render an archived run as text",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of an archived series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "", "series to analyze (default: first)")

	presetsCmd := &cobra.Command{
		Use:   "presets [demo]",
		Short: "list available presets for a demo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := registry.Get(args[0]); err != nil {
				return err
			}
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

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				fmt.Println(name)
			}
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render the demos listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [demo]",
		Short: "evaluate a demo over a range of one slider",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	valueFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "slider to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of points")
	sweepCmd.Flags().StringVarP(&outFile, "output", "o", "", "render each point, index inserted before the extension")
	_ = sweepCmd.MarkFlagRequired("param")

	checkCmd := &cobra.Command{
		Use:   "check [demo]",
		Short: "evaluate a demo at random slider positions",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().IntVar(&trials, "trials", 50, "number of random settings")
	checkCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	rootCmd.AddCommand(listCmd, paramsCmd, showCmd, liveCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		runCmd, runsCmd, replayCmd, analyzeCmd, presetsCmd, themesCmd, batchCmd, sweepCmd, checkCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func valueFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "slider value as name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "parameter file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset")
}

func outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().Float64Var(&outWidth, "out-width", 0, "output width in points")
	cmd.Flags().Float64Var(&outHeight, "out-height", 0, "output height per panel in points")
}

// loadSettings reads PHYSDEMO_* and lets explicit flags win over them.
func loadSettings(cmd *cobra.Command, args []string) error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("data") {
		dataDir = env.DataDir
	}
	if !flags.Changed("theme") {
		themeName = env.Theme
	}
	if !flags.Changed("width") {
		width = env.Width
	}
	if !flags.Changed("height") {
		height = env.Height
	}
	if !flags.Changed("fps") {
		frameRate = env.FPS
	}
	return viz.SetTheme(themeName)
}

func liveOptions() viz.Options {
	return viz.Options{Width: width, Height: height, FPS: frameRate, SnapshotDir: "."}
}

// resolve looks up the demo and layers preset, parameter file and --set.
func resolve(name string) (demo.Demo, demo.Values, *config.File, error) {
	d, err := registry.Get(name)
	if err != nil {
		return nil, nil, nil, err
	}
	var file *config.File
	if configFile != "" {
		file, err = config.Load(configFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	set, err := demo.ParseAssignments(setFlags)
	if err != nil {
		return nil, nil, nil, err
	}
	values, err := config.Resolve(d, preset, file, set)
	if err != nil {
		return nil, nil, nil, err
	}
	return d, values, file, nil
}

func listDemos(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSLIDERS\tANIMATED\tSUMMARY")
	for _, d := range registry.All() {
		_, animated := d.(demo.Animated)
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", d.Name(), len(d.Params()), animated, d.Summary())
	}
	return w.Flush()
}

func listParams(cmd *cobra.Command, args []string) error {
	d, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMIN\tMAX\tDEFAULT\tSTEP\tUNIT\tLABEL")
	for _, p := range d.Params() {
		step := p.Format(p.Step)
		if p.Log {
			step += " dec"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Format(p.Min), p.Format(p.Max), p.Format(p.Default), step, p.Unit, p.Label)
	}
	return w.Flush()
}

func showDemo(cmd *cobra.Command, args []string) error {
	d, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	fig, err := demo.Evaluate(cmd.Context(), d, values)
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderFigure(fig, viz.RenderOptions{Width: width, Height: height}))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	d, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	return viz.RunLive(cmd.Context(), d, values, liveOptions())
}

func plotDemo(cmd *cobra.Command, args []string) error {
	d, values, file, err := resolve(args[0])
	if err != nil {
		return err
	}
	path, w, h := outFile, outWidth, outHeight
	if file != nil {
		if path == "" {
			path = file.Output.File
		}
		if !cmd.Flags().Changed("out-width") {
			w = file.Output.Width
		}
		if !cmd.Flags().Changed("out-height") {
			h = file.Output.Height
		}
	}
	if path == "" {
		path = d.Name() + ".png"
	}

	fig, err := demo.Evaluate(cmd.Context(), d, values)
	if err != nil {
		return err
	}
	if err := export.SavePlot(fig, path, w, h); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	d, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	fig, err := demo.Evaluate(cmd.Context(), d, values)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, fig)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	d, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	fig, err := demo.Evaluate(cmd.Context(), d, values)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, fig)
}

func runDemo(cmd *cobra.Command, args []string) error {
	d, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("computing %s...\n", d.Name())
	start := time.Now()

	fig, err := demo.Evaluate(cmd.Context(), d, values)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := storage.New(dataDir).Save(d.Name(), values, fig)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	for _, note := range fig.Notes {
		fmt.Printf("  %s\n", note)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDEMO\tTIME\tPOINTS\tPARAMS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Demo,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			formatValues(run.Params),
		)
	}
	return w.Flush()
}

func formatValues(v demo.Values) string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.4g", name, v[name]))
	}
	return strings.Join(parts, " ")
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fig, err := st.LoadFigure(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("demo: %s\n", meta.Demo)
	fmt.Printf("params: %s\n\n", formatValues(meta.Params))
	fmt.Print(viz.RenderFigure(fig, viz.RenderOptions{Width: width, Height: height}))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	var xs, ys []float64
	name := seriesName
	for _, p := range points {
		if name == "" {
			name = p.Series
		}
		if p.Series == name {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(ys) < 4 {
		return fmt.Errorf("series %q: need at least 4 samples, have %d", name, len(ys))
	}

	return analyzeSeries(os.Stdout, args[0], name, xs, ys)
}

func analyzeSeries(w io.Writer, runID, name string, xs, ys []float64) error {
	dx := xs[1] - xs[0]
	if dx <= 0 {
		return fmt.Errorf("series %q: x must increase", name)
	}
	for i := 2; i < len(xs); i++ {
		if math.Abs(xs[i]-xs[i-1]-dx) > 1e-6*math.Abs(dx) {
			fmt.Fprintf(os.Stderr, "physdemo: series %q is not evenly sampled, spectrum is approximate\n", name)
			break
		}
	}

	amp := analysis.AmplitudeSpectrum(ys)
	freqs := analysis.Frequencies(len(ys), dx)

	fmt.Fprintf(w, "frequency analysis: %s\n", runID)
	fmt.Fprintf(w, "series: %s (%d samples)\n\n", name, len(ys))

	graph := asciigraph.Plot(amp,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("amplitude spectrum of %s", name)),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)

	peak := analysis.DominantBin(amp)
	fmt.Fprintf(w, "dominant frequency: %.4g\n", freqs[peak])
	if freqs[peak] > 0 {
		fmt.Fprintf(w, "period: %.4g\n", 1/freqs[peak])
	}
	return nil
}

func runner() *automation.Runner {
	return &automation.Runner{
		Registry: registry,
		Store:    storage.New(dataDir),
		Logger:   automation.NewLogger(os.Stderr),
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := runner().RunScenario(cmd.Context(), scenario)
	for _, r := range results {
		switch {
		case r.File != "" && r.RunID != "":
			fmt.Printf("%s\t%s\t%s\n", r.Demo, r.File, r.RunID)
		case r.File != "":
			fmt.Printf("%s\t%s\n", r.Demo, r.File)
		case r.RunID != "":
			fmt.Printf("%s\t%s\n", r.Demo, r.RunID)
		default:
			fmt.Printf("%s\tok\n", r.Demo)
		}
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, values, _, err := resolve(args[0])
	if err != nil {
		return err
	}
	delete(values, sweepParam)
	sweep := &automation.ParameterSweep{
		Demo:   args[0],
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  sweepSteps,
		Base:   values,
		Output: outFile,
	}
	results, err := runner().RunSweep(cmd.Context(), sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFILE\tNOTES\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%s\t%s\n", r.Value, r.File, strings.Join(r.Notes, "; "))
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, err := runner().RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Demo:      args[0],
		NumTrials: trials,
		Seed:      seed,
	})
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("trial %d: %s: %v\n", r.TrialID, formatValues(r.Values), r.Err)
		}
	}
	failed, nonFinite := automation.MonteCarloStats(results)
	fmt.Printf("%d trials: %d failed, %d with non-finite points\n", len(results), failed, nonFinite)
	if failed > 0 {
		return fmt.Errorf("%s: %d of %d settings failed", args[0], failed, len(results))
	}
	return nil
}
