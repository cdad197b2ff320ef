package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/18Orion/ParticleInteractionSimulator/internal/config"
	"github.com/18Orion/ParticleInteractionSimulator/internal/export"
	"github.com/18Orion/ParticleInteractionSimulator/internal/metrics"
	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
	"github.com/18Orion/ParticleInteractionSimulator/internal/storage"
	"github.com/18Orion/ParticleInteractionSimulator/internal/viz"
)

const defaultPreset = "earth-drop"

var (
	dataDir  string
	logLevel string
	// run / live
	preset        string
	duration      float64
	ticks         int
	sampleEvery   int
	tick          float64
	frameRate     int
	ticksPerFrame int
	// plot
	plotBody  string
	plotField string
	// presets, export-svg
	saveTo string
	svgW   int
	svgH   int

	logger = slog.Default()
)

// main registers the partsim commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "partsim",
		Short:         "2-D n-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario and save the sampled states",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
	runCmd.Flags().Float64Var(&tick, "tick", 0, "override tick duration (s)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override simulated duration (s)")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "run exactly this many ticks instead of --time")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "record every n-th tick")

	liveCmd := &cobra.Command{
		Use:   "live [scenario.yaml]",
		Short: "animate a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
	liveCmd.Flags().Float64Var(&tick, "tick", 0, "override tick duration (s)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&ticksPerFrame, "ticks-per-frame", 1, "ticks advanced per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's trajectory over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body name or index (default: every moving body)")
	plotCmd.Flags().StringVar(&plotField, "field", "", "x, y, vx, vy, ax or ay (default: x and y)")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's sampled states as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(args[0], cmd.OutOrStdout())
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run's metadata and per-body tracks as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], cmd.OutOrStdout())
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw every body's trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&saveTo, "output", "o", "", "output file (default: stdout)")
	exportSVGCmd.Flags().IntVar(&svgW, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgH, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list built-in scenarios, or write one out as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}
	presetsCmd.Flags().StringVarP(&saveTo, "output", "o", "", "write the preset to this file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, showCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})), nil
}

// loadScenario resolves the scenario from a file argument or --preset,
// falling back to the default preset, and applies flag overrides.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case len(args) == 1 && preset != "":
		return nil, fmt.Errorf("give either a scenario file or --preset, not both")
	case len(args) == 1:
		c, err := config.Load(args[0])
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		name := preset
		if name == "" {
			name = defaultPreset
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("tick") {
		cfg.Tick = tick
	}
	if flags.Changed("time") {
		cfg.Duration = duration
		cfg.Ticks = 0
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	world, err := cfg.Build(sim.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		world.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("running scenario", "scenario", cfg.Name, "bodies", world.Len(), "tick", cfg.Tick)
	result, runErr := world.Record(ctx, cfg.RunConfig())
	if result == nil {
		return runErr
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:    cfg.Name,
		Tick:        cfg.Tick,
		Duration:    cfg.Duration,
		SampleEvery: cfg.RunConfig().SampleEvery,
	}, result)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", runID)
	fmt.Fprintf(out, "ticks: %d (t=%gs)\n", result.TicksTaken, result.Times[len(result.Times)-1])
	fmt.Fprintf(out, "samples: %d\n", len(result.Times))
	fmt.Fprintf(out, "energy drift: %.3e\n", result.EnergyDrift)
	if n := len(result.Collisions); n > 0 {
		fmt.Fprintf(out, "collisions: %d (first at t=%gs)\n", n, result.Collisions[0].Time)
	}
	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range metrics.Defaults() {
		if v, ok := result.Metrics[m.Name()]; ok {
			fmt.Fprintf(out, "  %-16s %g\n", m.Name(), v)
		}
	}
	// a partial run is still saved before reporting why it stopped
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	build := func() (*sim.World, error) { return cfg.Build(sim.WithLogger(logger)) }
	return viz.Run(cfg.Name, build, ticksPerFrame, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSIM TIME\tTICK\tTICKS\tBODIES\tDRIFT")

	for _, run := range runs {
		drift := "-"
		if run.EnergyDrift != nil {
			drift = fmt.Sprintf("%.2e", *run.EnergyDrift)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%gs\t%gs\t%d\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ElapsedSimS,
			run.Tick,
			run.Ticks,
			len(run.Bodies),
			drift,
		)
	}

	return w.Flush()
}

var fieldNames = []string{"x", "y", "vx", "vy", "ax", "ay"}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) < 2 {
		return fmt.Errorf("not enough samples to plot")
	}

	bodies, err := selectBodies(meta, states)
	if err != nil {
		return err
	}
	fields := []int{0, 1}
	if plotField != "" {
		f, err := fieldIndex(plotField)
		if err != nil {
			return err
		}
		fields = []int{f}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s\n", meta.Scenario)
	fmt.Fprintf(out, "samples: %d\n\n", len(states))

	for _, b := range bodies {
		for _, f := range fields {
			data := storage.BodyColumn(states, b, f)
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s %s vs time", meta.Bodies[b], fieldNames[f])),
			)
			fmt.Fprintln(out, graph)
			fmt.Fprintln(out)
		}
	}

	return nil
}

// selectBodies resolves --body to column indexes. Without it every body
// whose position changes is plotted, which skips fixed anchors.
func selectBodies(meta *storage.RunMetadata, states [][]float64) ([]int, error) {
	if plotBody != "" {
		for i, name := range meta.Bodies {
			if name == plotBody {
				return []int{i}, nil
			}
		}
		if i, err := strconv.Atoi(plotBody); err == nil && i >= 0 && i < len(meta.Bodies) {
			return []int{i}, nil
		}
		return nil, fmt.Errorf("unknown body %q (bodies: %s)", plotBody, strings.Join(meta.Bodies, ", "))
	}

	var out []int
	for i := range meta.Bodies {
		if moved(storage.BodyColumn(states, i, 0)) || moved(storage.BodyColumn(states, i, 1)) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no body moved during the run")
	}
	return out, nil
}

func moved(col []float64) bool {
	for _, v := range col {
		if v != col[0] {
			return true
		}
	}
	return false
}

func fieldIndex(name string) (int, error) {
	for i, f := range fieldNames {
		if f == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q (fields: %s)", name, strings.Join(fieldNames, ", "))
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, _, tracks, err := storage.New(dataDir).LoadTracks(args[0])
	if err != nil {
		return err
	}
	if svgW < 1 || svgH < 1 {
		return fmt.Errorf("image size must be positive, got %dx%d", svgW, svgH)
	}

	svg := export.TracksToSVG(tracks, svgW, svgH)
	if saveTo == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(saveTo, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote svg", "run", args[0], "path", saveTo)
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBODIES\tTICK\tDURATION")
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			fmt.Fprintf(w, "%s\t%d\t%gs\t%gs\n", name, len(p.Bodies), p.Tick, p.Duration)
		}
		return w.Flush()
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
	}
	if saveTo == "" {
		return fmt.Errorf("--output is required to write a preset")
	}
	if err := config.Save(saveTo, p); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s to %s\n", args[0], saveTo)
	return nil
}
