package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/ohq-sim/sim"
	"github.com/inference-sim/ohq-sim/sim/sweep"
	"github.com/inference-sim/ohq-sim/sim/trace"
)

// configVersion is the only config schema version understood.
const configVersion = "1"

// Config represents the full config YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version    string           `yaml:"version"`
	Budget     sweep.Budget     `yaml:"budget"`
	Simulation SimulationConfig `yaml:"simulation"`
	Scoring    sim.ScoreConfig  `yaml:"scoring"`
	Sweep      SweepConfig      `yaml:"sweep"`
}

// SimulationConfig parameterizes the queueing network of every run.
type SimulationConfig struct {
	Seed               int64            `yaml:"seed"`
	Repetitions        int              `yaml:"repetitions"` // slot windows simulated per run
	MaxSteps           int64            `yaml:"max_steps"`   // 0 disables the cap
	DeriveRunSeeds     bool             `yaml:"derive_run_seeds"`
	Rate               sim.RateFunction `yaml:"rate"`
	ThinningBound      float64          `yaml:"thinning_bound"`
	ServiceMeanMinutes float64          `yaml:"service_mean_minutes"`
}

// SweepConfig controls execution and output of the sweep.
type SweepConfig struct {
	Workers     int    `yaml:"workers"` // 0 = GOMAXPROCS
	Output      string `yaml:"output"`
	Header      bool   `yaml:"header"`
	Trace       string `yaml:"trace"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// DefaultConfig mirrors the reference constants: 25 staff × 2 hours, a class
// of 375, seed 13 and 20 slot windows per run.
func DefaultConfig() Config {
	arrivals := sim.ReferenceArrivals()
	return Config{
		Version: configVersion,
		Budget:  sweep.DefaultBudget(),
		Simulation: SimulationConfig{
			Seed:               sim.DefaultSeed,
			Repetitions:        sweep.DefaultRepetitions,
			MaxSteps:           sim.DefaultMaxSteps,
			Rate:               arrivals.Rate,
			ThinningBound:      arrivals.ThinningBound,
			ServiceMeanMinutes: sim.ReferenceService().Mean,
		},
		Scoring: sim.DefaultScoreConfig(),
		Sweep: SweepConfig{
			Output: "sample.csv",
			Trace:  string(trace.TraceLevelNone),
		},
	}
}

// LoadConfig parses a config file over DefaultConfig, so omitted fields keep
// their defaults. Uses strict field checking: typos must cause errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if cfg.Version != configVersion {
		return Config{}, fmt.Errorf("unsupported config version %q (want %q)", cfg.Version, configVersion)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SweepConfig converts the file layout into a sweep configuration.
func (c Config) SweepConfig() sweep.Config {
	return sweep.Config{
		Budget: c.Budget,
		Network: sim.NetworkConfig{
			Key: sim.NewSimulationKey(c.Simulation.Seed),
			Arrivals: sim.ArrivalProcess{
				Kind:          sim.ArrivalInhomogeneousPoisson,
				Rate:          c.Simulation.Rate,
				ThinningBound: c.Simulation.ThinningBound,
			},
			Service:  sim.ServiceProcess{Kind: sim.ServiceExponential, Mean: c.Simulation.ServiceMeanMinutes},
			MaxSteps: c.Simulation.MaxSteps,
		},
		Scoring:        c.Scoring,
		Repetitions:    c.Simulation.Repetitions,
		Workers:        c.Sweep.Workers,
		DeriveRunSeeds: c.Simulation.DeriveRunSeeds,
		TraceLevel:     trace.TraceLevel(c.Sweep.Trace),
	}
}

// Validate checks the configuration as the sweep will see it.
func (c Config) Validate() error {
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep: workers must be >= 0, got %d", c.Sweep.Workers)
	}
	if c.Simulation.MaxSteps < 0 {
		return fmt.Errorf("simulation: max_steps must be >= 0, got %d", c.Simulation.MaxSteps)
	}
	return c.SweepConfig().Validate()
}

// defaultConfigYAML renders DefaultConfig as printed by `ohq-sim defaults`.
func defaultConfigYAML() ([]byte, error) {
	return yaml.Marshal(DefaultConfig())
}
