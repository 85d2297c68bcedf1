package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/ctrlsim/internal/analysis"
	"github.com/san-kum/ctrlsim/internal/config"
	"github.com/san-kum/ctrlsim/internal/experiment"
	"github.com/san-kum/ctrlsim/internal/stepresp"
	"github.com/san-kum/ctrlsim/internal/viz"
)

var (
	// walker
	target        float64
	start         float64
	kp            float64
	ki            float64
	kd            float64
	dt            float64
	duration      float64
	seed          string
	integralLimit float64
	band          float64
	// system
	mass      float64
	damping   float64
	stiffness float64
	samples   int
	span      float64
	method    string
	// shared
	configFile string
	preset     string
	live       bool
	loop       bool
	theme      string
	verbose    bool
	phase      bool
	methods    bool

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ctrlsim",
		Short:        "pid walking and mass-spring-damper step responses",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	walkCmd := &cobra.Command{
		Use:   "walk",
		Short: "drive a walker to a target with a pid controller",
		Args:  cobra.NoArgs,
		RunE:  runWalk,
	}
	walkCmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "desired location (m)")
	walkCmd.Flags().Float64Var(&start, "start", config.DefaultStart, "starting point (m)")
	walkCmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	walkCmd.Flags().Float64Var(&ki, "ki", 0, "integral gain")
	walkCmd.Flags().Float64Var(&kd, "kd", 0, "derivative gain")
	walkCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	walkCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	walkCmd.Flags().StringVar(&seed, "derivative-seed", "initial", "error assumed before t=0 (initial, zero)")
	walkCmd.Flags().Float64Var(&integralLimit, "integral-limit", 0, "clamp the integral term (0 = unbounded)")
	walkCmd.Flags().Float64Var(&band, "band", 0, "error band for the stability metric (0 = 2% of the distance)")
	addPlaybackFlags(walkCmd)

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "unit-step response of a mass-spring-damper",
		Args:  cobra.NoArgs,
		RunE:  runStep,
	}
	addSystemFlags(stepCmd)
	addPlaybackFlags(stepCmd)
	stepCmd.Flags().BoolVar(&phase, "phase", false, "print the velocity/displacement phase portrait")

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "compare step responses of several systems, or one system across methods",
		RunE:  runCompare,
	}
	addSystemFlags(compareCmd)
	compareCmd.Flags().BoolVar(&methods, "methods", false, "compare response methods on one system")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSECTION\tPARAMETERS")
			for _, name := range config.ListPresets() {
				section, desc := describePreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, section, desc)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(walkCmd, stepCmd, compareCmd, presetsCmd)
	return rootCmd
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass m (kg)")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping b (N*s/m)")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "stiffness k (N/m)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of samples")
	cmd.Flags().Float64Var(&span, "span", config.DefaultSpan, "time span (s)")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "response method (zoh, spring, rk4)")
}

func addPlaybackFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&live, "live", false, "animate the run in the terminal")
	cmd.Flags().BoolVar(&loop, "loop", true, "restart the animation after the last frame")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// loadConfig resolves defaults, then the preset, then the config file,
// then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}
	set("target", func() { cfg.Walker.Target = target })
	set("start", func() { cfg.Walker.Start = start })
	set("kp", func() { cfg.Walker.Kp = kp })
	set("ki", func() { cfg.Walker.Ki = ki })
	set("kd", func() { cfg.Walker.Kd = kd })
	set("dt", func() { cfg.Walker.Dt = dt })
	set("time", func() { cfg.Walker.Duration = duration })
	set("derivative-seed", func() { cfg.Walker.DerivativeSeed = seed })
	set("integral-limit", func() { cfg.Walker.IntegralLimit = integralLimit })
	set("band", func() { cfg.Walker.Band = band })
	set("mass", func() { cfg.System.Mass = mass })
	set("damping", func() { cfg.System.Damping = damping })
	set("stiffness", func() { cfg.System.Stiffness = stiffness })
	set("samples", func() { cfg.System.Samples = samples })
	set("span", func() { cfg.System.Span = span })
	set("method", func() { cfg.System.Method = method })
	return cfg, nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loopCfg, err := cfg.PIDLoop()
	if err != nil {
		return fmt.Errorf("invalid walker configuration: %w", err)
	}

	res, err := experiment.NewRunner(logger).Walk(cmd.Context(), loopCfg)
	if err != nil {
		return err
	}

	scene := viz.NewWalkerScene(res)
	if live {
		return viz.Run(scene, viz.Options{Theme: theme, Loop: loop})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "walk %.2fm -> %.2fm with %s over %d frames\n\n", loopCfg.Start, loopCfg.Target, loopCfg.Gains, res.Frames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range []string{"final_error", "iae", "control_effort", "stability"} {
		fmt.Fprintf(w, "%s\t%.6g\n", name, res.Metrics[name])
	}
	fmt.Fprintf(w, "final_position\t%.6g\n", res.Position.Last())
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Snapshot(scene, res.Frames-1, 60, 12))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Charts(scene, 80, 10))
	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stepCfg, err := cfg.StepResp()
	if err != nil {
		return fmt.Errorf("invalid system configuration: %w", err)
	}

	res, err := experiment.NewRunner(logger).Step(cmd.Context(), stepCfg)
	if err != nil {
		return err
	}

	scene := viz.NewSpringScene(res)
	if live {
		return viz.Run(scene, viz.Options{Theme: theme, Loop: loop})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "m=%g b=%g k=%g (%s, %d samples over %gs)\n", stepCfg.Mass, stepCfg.Damping, stepCfg.Stiffness, stepCfg.Method, stepCfg.Samples, stepCfg.Span)
	fmt.Fprintln(out, res.Modal)
	fmt.Fprintln(out)
	if err := writeStepInfo(out, res.Info); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Snapshot(scene, res.Frames()-1, 60, 12))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Charts(scene, 80, 10))
	if phase {
		fmt.Fprintln(out, "phase portrait (x vs v)")
		fmt.Fprint(out, analysis.PhasePortrait(res.Displacement.Values(), res.Velocity.Values(), 60, 20))
	}
	return nil
}

func writeStepInfo(out io.Writer, info analysis.StepInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steady state\t%.6g\n", info.SteadyState)
	fmt.Fprintf(w, "peak\t%.6g at %.3fs\n", info.Peak, info.PeakTime)
	fmt.Fprintf(w, "overshoot\t%.2f%%\n", info.Overshoot)
	fmt.Fprintf(w, "rise time\t%s\n", measured(info.RiseTime, info.Rose))
	fmt.Fprintf(w, "settling time\t%s\n", measured(info.SettlingTime, info.Settled))
	return w.Flush()
}

func measured(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3fs", v)
}

func runCompare(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner := experiment.NewRunner(logger)
	out := cmd.OutOrStdout()

	if methods {
		stepCfg, err := base.StepResp()
		if err != nil {
			return fmt.Errorf("invalid system configuration: %w", err)
		}
		spreads, err := runner.CompareMethods(cmd.Context(), stepCfg)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tMAX |x - x_zoh|")
		for _, s := range spreads {
			if !s.Applicable() {
				fmt.Fprintf(w, "%s\tn/a (%v)\n", s.Method, s.Err)
				continue
			}
			fmt.Fprintf(w, "%s\t%.3e\n", s.Method, s.MaxAbs)
		}
		return w.Flush()
	}

	names := args
	if len(names) == 0 {
		names = []string{"msd", "practice", "critical", "overdamped"}
	}
	cfgs := make([]stepresp.Config, len(names))
	for i, name := range names {
		p := config.GetPreset(name)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		if cfgs[i], err = p.StepResp(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}

	results, err := runner.Sweep(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tZETA\tCLASS\tPEAK\tOVERSHOOT\tSETTLING")
	curves := make([][]float64, len(results))
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%.4f\t%.1f%%\t%s\n",
			names[i], res.Modal.DampingRatio, res.Modal.Class, res.Info.Peak, res.Info.Overshoot,
			measured(res.Info.SettlingTime, res.Info.Settled))
		curves[i] = res.Displacement.Values()
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.PlotMany(curves,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(seriesColors[:min(len(curves), len(seriesColors))]...),
		asciigraph.Caption("displacement x(t): "+strings.Join(names, ", ")),
	))
	return nil
}

var seriesColors = []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan}

func describePreset(name string) (section, desc string) {
	p := config.GetPreset(name)
	section = config.PresetSection(name)
	if section == "walker" {
		w := p.Walker
		return section, fmt.Sprintf("target=%g start=%g kp=%g ki=%g kd=%g dt=%g time=%g", w.Target, w.Start, w.Kp, w.Ki, w.Kd, w.Dt, w.Duration)
	}
	s := p.System
	return section, fmt.Sprintf("m=%g b=%.4g k=%g samples=%d span=%g method=%s", s.Mass, s.Damping, s.Stiffness, s.Samples, s.Span, s.Method)
}
