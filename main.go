package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SamiJones/Threading/sdl"
	"github.com/SamiJones/Threading/terrain"
	"github.com/SamiJones/Threading/util"
)

// SDL needs the main OS thread
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "threading",
		Short: "Distances and slope angles between neighbouring samples of an elevation grid",
		Long: `Computes, for every sample of an elevation grid, the distance and slope angle
to its right-hand neighbour (the last column wraps to the first), either in one
pass, in row batches, or split across worker goroutines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(out), newGenerateCommand(out), newConfigCommand(out))
	return root
}

func newRunCommand(out io.Writer) *cobra.Command {
	v := newViper()
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a height file and compute distances and angles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return err
			}
			logger, err := util.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			p := cfg.Params()
			// Nothing is read or allocated for a bad configuration
			if err := p.Validate(); err != nil {
				return err
			}
			return run(p, cfg.NoVis, out, logger)
		},
	}

	d := defaultConfig()
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.String("strategy", d.Strategy, "sequential, batched or parallel")
	flags.Int("threads", d.Threads, "number of workers for the parallel strategy")
	flags.Int("batch-rows", d.BatchRows, "rows per cursor step for the batched strategy")
	flags.Int("height", d.Height, "number of rows in the grid")
	flags.Int("width", d.Width, "number of columns in the grid")
	flags.Float64("spacing", d.Spacing, "horizontal distance between adjacent columns")
	flags.String("input", d.Input, "height file to load")
	flags.Bool("novis", d.NoVis, "do not open the slope map window")
	flags.String("log-level", d.LogLevel, "panic, fatal, error, warn, info, debug or trace")
	for key, name := range map[string]string{
		"strategy":   "strategy",
		"threads":    "threads",
		"batch_rows": "batch-rows",
		"height":     "height",
		"width":      "width",
		"spacing":    "spacing",
		"input":      "input",
		"novis":      "novis",
		"log_level":  "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
	return cmd
}

type outcome struct {
	report terrain.CompletionReport
	err    error
}

// run computes on a separate goroutine while the main goroutine drains events,
// so the SDL window stays on the main thread.
func run(p terrain.Params, novis bool, out io.Writer, logger *logrus.Logger) error {
	events := make(chan terrain.Event, 16)
	result := make(chan outcome, 1)
	go func() {
		_, report, err := terrain.Run(p, events, logger)
		result <- outcome{report, err}
	}()

	if novis {
		for event := range events {
			logger.Debug(event.String())
		}
	} else if err := sdl.Run(events, logger); err != nil {
		logger.WithError(err).Warn("Slope map window failed")
	}

	res := <-result
	if res.err != nil {
		return res.err
	}
	printReport(out, res.report)
	return nil
}

func newGenerateCommand(out io.Writer) *cobra.Command {
	var (
		output string
		height int
		width  int
		seed   int64
	)
	d := defaultConfig()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a file of random heights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			p := terrain.Params{Height: height, Width: width, Input: output}
			if err := terrain.Generate(p, seed); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %dx%d heights to %s (seed %d).\n", width, height, output, seed)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", d.Input, "file to write")
	cmd.Flags().IntVar(&height, "height", d.Height, "number of rows")
	cmd.Flags().IntVar(&width, "width", d.Width, "number of columns")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (defaults to the current time)")
	return cmd
}

func newConfigCommand(out io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Write the default configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "threading.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := writeDefaultConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(out, "Default configuration written to %s.\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
