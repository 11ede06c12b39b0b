package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/analogstick/internal/config"
	"github.com/san-kum/analogstick/internal/gui"
	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/script"
	"github.com/san-kum/analogstick/internal/stick"
	"github.com/san-kum/analogstick/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	outer      float64
	inner      float64
	tapArea    float64
	fps        int
	logLevel   string
	logFormat  string
	logOutput  string
	plot       bool
)

// main registers commands and flags and runs the terminal demo when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "analogstick",
		Short: "virtual joystick playground",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset stick geometry")
	rootCmd.PersistentFlags().Float64Var(&outer, "outer", config.DefaultOuterRadius, "boundary radius")
	rootCmd.PersistentFlags().Float64Var(&inner, "inner", config.DefaultInnerRadius, "knob radius")
	rootCmd.PersistentFlags().Float64Var(&tapArea, "tap-area", config.DefaultTapArea, "hit area half-size")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "stderr", "log output (stderr, stdout or a file)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "drive the stick with the mouse in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "drive the stick with mouse or touch in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	replayCmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "replay a gesture script and print the emitted moves",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&plot, "plot", true, "plot move lengths and angles")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available stick presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOUTER\tINNER\tTAP AREA")
			for _, name := range config.ListPresets() {
				s := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\n", name, s.OuterRadius, s.InnerRadius, s.TapArea)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, replayCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then preset, then config file, then changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// config file refines the preset
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("outer") {
		cfg.Stick.OuterRadius = outer
	}
	if flags.Changed("inner") {
		cfg.Stick.InnerRadius = inner
	}
	if flags.Changed("tap-area") {
		cfg.Stick.TapArea = tapArea
	}
	if flags.Changed("fps") {
		cfg.TUI.FPS = fps
		cfg.GUI.FPS = fps
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("log-output") {
		cfg.Log.Output = logOutput
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg logger.Config) (logger.Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if preset == "" {
		preset = "terminal"
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal; only log when lines go elsewhere
	var log logger.Logger = logger.NewNop()
	if !cfg.Log.WritesToTerminal() {
		if log, err = newLogger(cfg.Log); err != nil {
			return err
		}
		defer log.Sync()
	}
	return tui.Run(logger.WithLogger(cmd.Context(), log), cfg)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()
	return gui.Run(logger.WithLogger(cmd.Context(), log), cfg)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := script.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	ctrl, err := s.Controller(cfg.Stick, stick.WithLogger(log))
	if err != nil {
		return err
	}
	defer ctrl.Dispose()

	trace, err := script.Run(logger.WithLogger(cmd.Context(), log), ctrl, s)
	if err != nil {
		return err
	}
	log.Info("replay finished",
		logger.F("script", s.Name),
		logger.F("steps", trace.Steps),
		logger.F("moves", len(trace.Moves)),
		logger.F("releases", trace.Releases))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tX\tY\tANGLE\tLENGTH\tKNOB X\tKNOB Y\t")
	for i, m := range trace.Moves {
		off := trace.Offsets[i]
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n", i, m.X, m.Y, m.Angle, m.Length, off.X, off.Y)
	}
	w.Flush()
	fmt.Printf("\nmoves: %d  releases: %d  max offset: %.2f\n", len(trace.Moves), trace.Releases, ctrl.MaxOffset())

	if plot && len(trace.Moves) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.Lengths(),
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("move length"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.Angles(),
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.LowerBound(-180),
			asciigraph.UpperBound(180),
			asciigraph.Caption("move angle (deg)"),
		))
	}
	return nil
}
