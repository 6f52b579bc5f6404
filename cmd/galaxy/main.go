package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/galaxy/internal/analysis"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/gui"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       uint64
	logLevel   string
	logFile    string
	theme      string
	guide      bool

	// galaxy parameter overrides
	count           int
	size            float64
	radius          float64
	branches        int
	spin            float64
	randomness      float64
	randomnessPower float64
	insideColor     string
	outsideColor    string

	// profile output
	bins    int
	showMap bool
)

// main registers the galaxy commands and runs the terminal viewer when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "galaxy",
		Short:        "procedural spiral galaxy generator",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a named galaxy preset")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 draws from entropy)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.BoolVar(&guide, "guide", false, "draw the ground axes in the terminal viewer")

	d := galaxy.DefaultParameters()
	pf.IntVar(&count, "count", d.Count, "number of particles")
	pf.Float64Var(&size, "size", d.Size, "point size")
	pf.Float64Var(&radius, "radius", d.Radius, "galaxy radius")
	pf.IntVar(&branches, "branches", d.Branches, "number of spiral arms")
	pf.Float64Var(&spin, "spin", d.Spin, "arm twist per unit radius")
	pf.Float64Var(&randomness, "randomness", d.Randomness, "scatter amplitude")
	pf.Float64Var(&randomnessPower, "randomness-power", d.RandomnessPower, "scatter falloff exponent")
	pf.StringVar(&insideColor, "inside-color", d.InsideColor.Hex(), "core color")
	pf.StringVar(&outsideColor, "outside-color", d.OutsideColor.Hex(), "rim color")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "view the galaxy in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "view the galaxy in an OpenGL window",
		RunE:  runGUI,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "generate once and print distribution statistics",
		RunE:  runProfile,
	}
	profileCmd.Flags().IntVar(&bins, "bins", 40, "radial histogram bins")
	profileCmd.Flags().BoolVar(&showMap, "map", false, "print a top-down density map")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation at increasing particle counts",
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available galaxy presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tRADIUS\tBRANCHES\tSPIN\tRANDOMNESS\tCOLORS")
			for _, name := range config.ListPresets() {
				g, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%.2f\t%.2f\t%s → %s\n",
					name, g.Count, g.Radius, g.Branches, g.Spin, g.Randomness, g.InsideColor, g.OutsideColor)
			}
			return w.Flush()
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return config.Save(args[0], cfg)
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, profileCmd, benchCmd, presetsCmd, saveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges defaults, the config file, the preset and any flags
// set on the command line, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		g, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Galaxy = g
	}

	flags := cmd.Flags()
	g := &cfg.Galaxy
	if flags.Changed("count") {
		g.Count = count
	}
	if flags.Changed("size") {
		g.Size = size
	}
	if flags.Changed("radius") {
		g.Radius = radius
	}
	if flags.Changed("branches") {
		g.Branches = branches
	}
	if flags.Changed("spin") {
		g.Spin = spin
	}
	if flags.Changed("randomness") {
		g.Randomness = randomness
	}
	if flags.Changed("randomness-power") {
		g.RandomnessPower = randomnessPower
	}
	if flags.Changed("inside-color") {
		g.InsideColor = insideColor
	}
	if flags.Changed("outside-color") {
		g.OutsideColor = outsideColor
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = theme
	}
	if flags.Changed("guide") {
		cfg.UI.Guide = guide
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}

	if _, err := cfg.Galaxy.Parameters(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves the configuration and starts logging to fallback unless a
// log file is configured.
func setup(cmd *cobra.Command, fallback io.Writer) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, closer, err := logging.Init(cfg.Logging, fallback)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closer, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the terminal belongs to the viewer; logs only go to a file
	cfg, log, closer, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer closer.Close()
	return viz.Run(cfg, log)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, log, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()
	return gui.Run(cfg, log)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, log, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	p, err := cfg.Galaxy.Parameters()
	if err != nil {
		return err
	}
	start := time.Now()
	buf, err := generate(cfg, p)
	if err != nil {
		return err
	}
	log.Debug("generated", "count", buf.Count, "elapsed", time.Since(start))

	prof, err := analysis.Compute(buf, p, bins)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyBuffer) {
			fmt.Println("empty galaxy: nothing to profile")
			return nil
		}
		return err
	}
	fmt.Print(analysis.Summary(prof))
	fmt.Println()
	fmt.Println(analysis.Chart(prof, 60, 12))
	if showMap {
		fmt.Println()
		fmt.Print(analysis.TopDown(buf, 80, 40))
	}
	return nil
}

// generate builds one galaxy from p, refusing counts over the render budget.
func generate(cfg *config.Config, p galaxy.Parameters) (*galaxy.Buffer, error) {
	if err := galaxy.CheckBudget(p.Count, cfg.Render.BudgetBytes()); err != nil {
		return nil, err
	}
	return galaxy.Generate(p, galaxy.SourceFactory(cfg.Seed)())
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, _, closer, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	p, err := cfg.Galaxy.Parameters()
	if err != nil {
		return err
	}
	fmt.Printf("benchmarking generation (%d branches, randomness %.2f)\n\n", p.Branches, p.Randomness)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tBYTES\tTIME\tPARTICLES/SEC")

	for _, n := range []int{1_000, 10_000, 100_000, galaxy.MaxCount} {
		p.Count = n
		if err := galaxy.CheckBudget(n, cfg.Render.BudgetBytes()); err != nil {
			fmt.Fprintf(w, "%d\t%d\tover budget\t-\n", n, galaxy.BufferBytes(n))
			continue
		}
		rng := galaxy.SourceFactory(cfg.Seed)()
		start := time.Now()
		buf, err := galaxy.Generate(p, rng)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, buf.Bytes(), elapsed, float64(n)/elapsed.Seconds())
	}
	return w.Flush()
}
