package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/ohq-sim/sim/sweep"
)

var (
	// CLI flags; each overrides the config file only when set explicitly
	configPath     string // YAML config file
	logLevel       string // Log verbosity level
	seed           int64  // Seed of every run's random stream
	repetitions    int    // Slot windows simulated per run
	maxSteps       int64  // Event cap per run
	deriveRunSeeds bool   // Give every triple its own derived stream
	workers        int    // Parallel runs
	outputPath     string // CSV output file
	writeHeader    bool   // Write a header row to the CSV
	traceLevel     string // Routing trace verbosity
	metricsFile    string // Prometheus textfile output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ohq-sim",
	Short: "Discrete-event simulator for office-hours staffing strategies",
}

// runCmd executes the staffing sweep using the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate every staffing strategy and report the best one",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		sweepCfg := cfg.SweepConfig()
		if cfg.Sweep.MetricsFile != "" {
			sweepCfg.Metrics = sweep.NewMetrics()
		}

		logrus.Infof("Starting sweep: budget=%d staff-hours (%d TAs × %d h), seed=%d, repetitions=%d, workers=%d",
			cfg.Budget.Total(), cfg.Budget.NumTA, cfg.Budget.UnitTimeHours,
			cfg.Simulation.Seed, cfg.Simulation.Repetitions, cfg.Sweep.Workers)
		startTime := time.Now()

		report, err := sweep.Run(cmd.Context(), sweepCfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		logrus.Infof("Sweep finished in %s: %d strategies, %d without data",
			time.Since(startTime).Round(time.Millisecond), len(report.Results), report.NoData)

		if report.HasBest {
			fmt.Printf("Optimal strategy is %s with a score of %v\n", report.Best.Params, report.Best.Score)
		} else {
			fmt.Println("No strategy served any students; nothing to recommend")
		}

		if cfg.Sweep.Output != "" {
			if err := sweep.SaveCSV(cfg.Sweep.Output, report.Results, cfg.Sweep.Header); err != nil {
				logrus.Fatalf("Failed to write results: %v", err)
			}
			logrus.Infof("Results written to %s", cfg.Sweep.Output)
		}
		if sweepCfg.Metrics != nil {
			if err := sweepCfg.Metrics.WriteToTextfile(cfg.Sweep.MetricsFile); err != nil {
				logrus.Fatalf("Failed to write metrics: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// paramsCmd lists the staffing parameters a sweep would evaluate
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List the (tn, dt, sn) triples of the configured budget",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		params := sweep.GenerateParams(cfg.Budget)
		for _, p := range params {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		logrus.Infof("%d staffing parameters for a budget of %d staff-hours", len(params), cfg.Budget.Total())
	},
}

// defaultsCmd prints the default configuration as YAML
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := defaultConfigYAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads the config file (or defaults) and applies explicitly
// set flags on top. Unset flags never overwrite file values.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if flags.Changed("repetitions") {
		cfg.Simulation.Repetitions = repetitions
	}
	if flags.Changed("max-steps") {
		cfg.Simulation.MaxSteps = maxSteps
	}
	if flags.Changed("derive-seeds") {
		cfg.Simulation.DeriveRunSeeds = deriveRunSeeds
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}
	if flags.Changed("output") {
		cfg.Sweep.Output = outputPath
	}
	if flags.Changed("header") {
		cfg.Sweep.Header = writeHeader
	}
	if flags.Changed("trace") {
		cfg.Sweep.Trace = traceLevel
	}
	if flags.Changed("metrics-file") {
		cfg.Sweep.MetricsFile = metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Simulation.Seed, "Seed for every run's random stream")
	runCmd.Flags().IntVar(&repetitions, "repetitions", defaults.Simulation.Repetitions, "Slot windows simulated per run")
	runCmd.Flags().Int64Var(&maxSteps, "max-steps", defaults.Simulation.MaxSteps, "Maximum events per run (0 disables the cap)")
	runCmd.Flags().BoolVar(&deriveRunSeeds, "derive-seeds", defaults.Simulation.DeriveRunSeeds, "Derive a distinct seed for every staffing parameter")
	runCmd.Flags().IntVar(&workers, "workers", defaults.Sweep.Workers, "Parallel runs (0 uses GOMAXPROCS)")
	runCmd.Flags().StringVar(&outputPath, "output", defaults.Sweep.Output, "CSV results file (empty disables)")
	runCmd.Flags().BoolVar(&writeHeader, "header", defaults.Sweep.Header, "Write a header row to the CSV")
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.Sweep.Trace, "Routing trace level (none, decisions)")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus sweep metrics to this textfile")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(defaultsCmd)
}
