package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/automation"
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/config"
	"github.com/merthusman/fractalcode/internal/digits"
	"github.com/merthusman/fractalcode/internal/experiment"
	"github.com/merthusman/fractalcode/internal/export"
	"github.com/merthusman/fractalcode/internal/metrics"
	"github.com/merthusman/fractalcode/internal/storage"
	"github.com/merthusman/fractalcode/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	seedSize   int
	finalSize  int
	steps      int
	source     string
	resampler  string
	configFile string
	preset     string
	digitsFile string
	// dim options
	plotScaling bool
	svgPath     string
	// render options
	renderWidth int
	useDots     bool
	// digits/export output
	outFile     string
	digitsWidth int
	// sweep bounds
	sweepFrom int
	sweepTo   int
	sweepBy   int
)

// main registers the fractalcode commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fractalcode",
		Short: "self-similar field construction and measurement lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractalcode", "data directory")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "build a field and measure its dimension",
		RunE:  runBuild,
	}
	addConstructionFlags(buildCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "build a field with live visualization",
		RunE:  runLive,
	}
	addConstructionFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	dimCmd := &cobra.Command{
		Use:   "dim [run_id]",
		Short: "re-measure the dimension of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  measureRun,
	}
	dimCmd.Flags().BoolVar(&plotScaling, "plot", false, "draw the log-log scaling plot")
	dimCmd.Flags().StringVar(&svgPath, "svg", "", "write the scaling plot as SVG")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a saved field in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().IntVar(&renderWidth, "width", 64, "output width in characters")
	renderCmd.Flags().BoolVar(&useDots, "dots", false, "render the above-mean set as Braille dots")
	renderCmd.Flags().StringVar(&svgPath, "svg", "", "write the field as SVG instead")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "write JSON to a file instead of stdout")

	digitsCmd := &cobra.Command{
		Use:   "digits [count]",
		Short: "print digits of a source constant",
		Args:  cobra.ExactArgs(1),
		RunE:  printDigits,
	}
	digitsCmd.Flags().StringVar(&source, "source", config.DefaultSource, "digit source")
	digitsCmd.Flags().StringVar(&outFile, "out", "", "write digits to a file")
	digitsCmd.Flags().IntVar(&digitsWidth, "wrap", 60, "digits per line, 0 disables wrapping")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep evolution steps and chart the measured dimension",
		RunE:  sweepSteps,
	}
	sweepCmd.Flags().IntVar(&seedSize, "seed-size", config.DefaultSeedSize, "seed grid side")
	sweepCmd.Flags().IntVar(&finalSize, "final-size", 64, "final grid side")
	sweepCmd.Flags().StringVar(&source, "source", config.DefaultSource, "digit source")
	sweepCmd.Flags().StringVar(&resampler, "resampler", config.DefaultResampler, "upscaling kernel")
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 5, "first step count")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 60, "last step count")
	sweepCmd.Flags().IntVar(&sweepBy, "by", 5, "step count increment")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted sequence of constructions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [source] [source] ...",
		Short: "compare digit sources on the same construction",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSources,
	}
	compareCmd.Flags().IntVar(&seedSize, "seed-size", config.DefaultSeedSize, "seed grid side")
	compareCmd.Flags().IntVar(&finalSize, "final-size", 64, "final grid side")
	compareCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "evolution steps per scale")
	compareCmd.Flags().StringVar(&resampler, "resampler", config.DefaultResampler, "upscaling kernel")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(buildCmd, liveCmd, listCmd, dimCmd, renderCmd, exportCmd, digitsCmd, sweepCmd, scenarioCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConstructionFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&seedSize, "seed-size", config.DefaultSeedSize, "seed grid side, a power of two")
	cmd.Flags().IntVar(&finalSize, "final-size", config.DefaultFinalSize, "final grid side, a power of two")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "evolution steps per scale")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "digit source")
	cmd.Flags().StringVar(&resampler, "resampler", config.DefaultResampler, "upscaling kernel")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&digitsFile, "digits-file", "", "read digits from a file instead of generating them")
}

// resolveConfig builds the effective run configuration: defaults, then
// preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed-size") {
		cfg.SeedSize = seedSize
	}
	if cmd.Flags().Changed("final-size") {
		cfg.FinalSize = finalSize
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = source
	}
	if cmd.Flags().Changed("resampler") {
		cfg.Resampler = resampler
	}
	if cmd.Flags().Changed("digits-file") {
		cfg.DigitsFile = digitsFile
	}

	return cfg, nil
}

// loadDigits reads the configured digits file, or returns nil so the run
// generates its own sequence.
func loadDigits(cfg *config.Config) ([]uint8, error) {
	if cfg.DigitsFile == "" {
		return nil, nil
	}
	f, err := os.Open(cfg.DigitsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seq, err := digits.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", cfg.DigitsFile, err)
	}
	return seq, nil
}

func fmtDim(d float64, valid bool) string {
	if !valid {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", d)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	seq, err := loadDigits(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		SeedSize:  cfg.SeedSize,
		FinalSize: cfg.FinalSize,
		Steps:     cfg.Steps,
		Source:    cfg.Source,
		Resampler: cfg.Resampler,
		Digits:    seq,
	})
	exp.AddMetric(metrics.NewCoverage())
	exp.AddMetric(metrics.NewRoughness())
	exp.AddMetric(metrics.NewAmplitude())

	fmt.Printf("building %d -> %d from %s digits...\n", cfg.SeedSize, cfg.FinalSize, cfg.Source)

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Source:         cfg.Source,
		Resampler:      cfg.Resampler,
		Schedule:       result.Schedule,
		Steps:          cfg.Steps,
		DigitsUsed:     result.DigitsUsed,
		ElapsedSeconds: result.Elapsed.Seconds(),
		Metrics:        result.Metrics,
		Whole:          storage.NewDimensionRecord(result.Whole),
		Quadrant:       storage.NewDimensionRecord(result.Quadrant),
	}, result.Field)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("digits used: %d\n", result.DigitsUsed)
	fmt.Println()
	fmt.Println(viz.Separator(48))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("D (whole)    "), viz.MetricValue.Render(fmtDim(result.Whole.Dimension, result.Whole.Valid)))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("D (quadrant) "), viz.MetricValue.Render(fmtDim(result.Quadrant.Dimension, result.Quadrant.Valid)))
	if result.Whole.Valid && result.Quadrant.Valid {
		delta := math.Abs(result.Whole.Dimension - result.Quadrant.Dimension)
		fmt.Printf("%s %.4f\n", viz.MetricLabel.Render("agreement    "), delta)
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	seq, err := loadDigits(cfg)
	if err != nil {
		return err
	}

	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan viz.StageUpdate, 16)
	done := make(chan viz.LiveResult, 1)
	obs := viz.NewChannelObserver(updates)

	exp := experiment.New(experiment.Config{
		SeedSize:  cfg.SeedSize,
		FinalSize: cfg.FinalSize,
		Steps:     cfg.Steps,
		Source:    cfg.Source,
		Resampler: cfg.Resampler,
		Digits:    seq,
	})
	exp.AddObserver(obs)

	go func() {
		res, err := exp.Run(ctx)
		obs.Close()
		if err != nil {
			done <- viz.LiveResult{Err: err}
			return
		}
		done <- viz.LiveResult{
			Whole:    res.Whole,
			Quadrant: res.Quadrant,
			Elapsed:  res.Elapsed,
		}
	}()

	p := tea.NewProgram(viz.NewLive(schedule, updates, done))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tFINAL\tSTEPS\tD_WHOLE\tD_QUAD")

	for _, run := range runs {
		final := 0
		if len(run.Schedule) > 0 {
			final = run.Schedule[len(run.Schedule)-1]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			final,
			run.Steps,
			fmtDim(run.Whole.Dimension, run.Whole.Valid),
			fmtDim(run.Quadrant.Dimension, run.Quadrant.Valid),
		)
	}

	return w.Flush()
}

func measureRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	grid, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	whole := analysis.BoxCount(grid)
	quad, err := analysis.Quadrant(grid)
	if err != nil {
		return err
	}
	quadEst := analysis.BoxCount(quad)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n\n", grid.Size(), grid.Size())

	if !whole.Valid {
		fmt.Println("degenerate grid: no usable scaling range")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOX\tCOUNT\tLOG2_COUNT")
	for _, p := range whole.Points {
		fmt.Fprintf(w, "%d\t%d\t%.3f\n", p.BoxSize, p.Count, math.Log2(float64(p.Count)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("D (whole):    %s\n", fmtDim(whole.Dimension, whole.Valid))
	fmt.Printf("D (quadrant): %s\n", fmtDim(quadEst.Dimension, quadEst.Valid))
	if quadEst.Valid {
		fmt.Printf("agreement:    %.4f\n", math.Abs(whole.Dimension-quadEst.Dimension))
	}

	if plotScaling {
		fmt.Println()
		fmt.Print(viz.ScalingPlot(whole.Points, 50, 14))
		fmt.Println("log box size vs log occupied count; slope = -D")
	}

	if svgPath != "" {
		svg := export.ScalingToSVG(whole.Points, 600, 400)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("scaling plot written to %s\n", svgPath)
	}

	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	grid, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	if svgPath != "" {
		svg := export.FieldToSVG(grid, 4)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("field written to %s\n", svgPath)
		return nil
	}

	if useDots {
		fmt.Print(viz.Dots(grid, renderWidth))
		return nil
	}
	fmt.Print(viz.Heatmap(grid, renderWidth))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	grid, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSON(outFile, meta, grid); err != nil {
			return err
		}
		fmt.Printf("run %s written to %s\n", runID, outFile)
		return nil
	}
	return storage.ExportJSONStdout(meta, grid)
}

func printDigits(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		return fmt.Errorf("invalid digit count: %s", args[0])
	}

	registry := experiment.NewRegistry()
	gen, err := registry.GetSource(source)
	if err != nil {
		return err
	}

	text := digits.Format(gen(count), digitsWidth)

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(text+"\n"), 0644); err != nil {
			return err
		}
		fmt.Printf("%d digits of %s written to %s\n", count, source, outFile)
		return nil
	}

	fmt.Println(text)
	return nil
}

func sweepSteps(cmd *cobra.Command, args []string) error {
	if sweepFrom < 1 || sweepTo < sweepFrom || sweepBy < 1 {
		return fmt.Errorf("invalid sweep range %d..%d by %d", sweepFrom, sweepTo, sweepBy)
	}

	schedule, err := builder.NewSchedule(seedSize, finalSize)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	gen, err := registry.GetSource(source)
	if err != nil {
		return err
	}
	seq := gen(schedule.DigitBudget())

	fmt.Printf("sweeping evolution steps %d..%d by %d at %d -> %d\n\n", sweepFrom, sweepTo, sweepBy, seedSize, finalSize)

	var configs []experiment.Config
	var stepCounts []int
	for n := sweepFrom; n <= sweepTo; n += sweepBy {
		configs = append(configs, experiment.Config{
			SeedSize:  seedSize,
			FinalSize: finalSize,
			Steps:     n,
			Resampler: resampler,
			Digits:    seq,
		})
		stepCounts = append(stepCounts, n)
	}

	batch := experiment.NewBatch(configs).WithMetrics(func() []builder.Metric {
		return []builder.Metric{metrics.NewCoverage()}
	})
	results, err := batch.Run(context.Background())
	if err != nil {
		return err
	}

	var dims []float64
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tD_WHOLE\tD_QUAD\tCOVERAGE\tTIME")

	for i, res := range results {
		dims = append(dims, res.Whole.Dimension)
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%v\n",
			stepCounts[i],
			fmtDim(res.Whole.Dimension, res.Whole.Valid),
			fmtDim(res.Quadrant.Dimension, res.Quadrant.Valid),
			res.Metrics["coverage"],
			res.Elapsed.Round(time.Millisecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(dims) >= 2 {
		fmt.Println()
		graph := asciigraph.Plot(dims,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("D (whole) vs evolution steps"),
		)
		fmt.Println(graph)
		fmt.Println()
		fmt.Printf("spread: %s\n", viz.SparklineChart(dims, 40))
	}

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFINAL\tD_WHOLE\tD_QUAD\tDIGITS\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%v\n",
			r.Name,
			r.Result.Field.Size(),
			fmtDim(r.Result.Whole.Dimension, r.Result.Whole.Valid),
			fmtDim(r.Result.Quadrant.Dimension, r.Result.Quadrant.Valid),
			r.Result.DigitsUsed,
			r.Result.Elapsed.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

func compareSources(cmd *cobra.Command, args []string) error {
	base := experiment.Config{
		SeedSize:  seedSize,
		FinalSize: finalSize,
		Steps:     steps,
		Resampler: resampler,
	}

	fmt.Printf("comparing digit sources at %d -> %d (%d steps, %s)\n\n", seedSize, finalSize, steps, resampler)

	comparisons, err := automation.CompareSources(context.Background(), args, base)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tD_WHOLE\tD_QUAD\tAGREEMENT\tTIME")
	for _, c := range comparisons {
		agreement := "n/a"
		if c.Result.Whole.Valid && c.Result.Quadrant.Valid {
			agreement = fmt.Sprintf("%.4f", math.Abs(c.Result.Whole.Dimension-c.Result.Quadrant.Dimension))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
			c.Source,
			fmtDim(c.Result.Whole.Dimension, c.Result.Whole.Valid),
			fmtDim(c.Result.Quadrant.Dimension, c.Result.Quadrant.Valid),
			agreement,
			c.Result.Elapsed.Round(time.Millisecond),
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSEED\tFINAL\tSTEPS\tSOURCE\tRESAMPLER")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			name, p.SeedSize, p.FinalSize, p.Steps, p.Source, p.Resampler)
	}
	return w.Flush()
}
