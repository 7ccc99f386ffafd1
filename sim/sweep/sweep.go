package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/ohq-sim/sim"
	"github.com/inference-sim/ohq-sim/sim/trace"
)

// DefaultRepetitions is how many slot windows each run simulates.
const DefaultRepetitions = 20

// Config controls one sweep.
type Config struct {
	Budget      Budget
	Network     sim.NetworkConfig
	Scoring     sim.ScoreConfig
	Repetitions int // horizon = dt*60*Repetitions minutes
	Workers     int // <= 0 uses GOMAXPROCS

	// DeriveRunSeeds gives every triple its own stream derived from the
	// network key; otherwise every run reuses the key unchanged.
	DeriveRunSeeds bool
	TraceLevel     trace.TraceLevel

	Metrics *Metrics // optional
}

// DefaultConfig returns the reference sweep.
func DefaultConfig() Config {
	return Config{
		Budget:      DefaultBudget(),
		Network:     sim.DefaultNetworkConfig(),
		Scoring:     sim.DefaultScoreConfig(),
		Repetitions: DefaultRepetitions,
		TraceLevel:  trace.TraceLevelNone,
	}
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Budget.Validate(); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	if err := c.Network.Validate(); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("repetitions must be >= 1, got %d", c.Repetitions)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

// Report is the outcome of a sweep. Results follow enumeration order.
type Report struct {
	Results []sim.RunResult
	Best    sim.RunResult
	HasBest bool
	NoData  int
}

// RunOne builds, simulates and scores a single staffing parameter.
// A no-data run returns the flagged result together with an error wrapping
// sim.ErrNoData.
func RunOne(p sim.StaffingParameter, cfg Config) (sim.RunResult, error) {
	res, _, err := runOne(p, cfg)
	return res, err
}

func runOne(p sim.StaffingParameter, cfg Config) (sim.RunResult, int64, error) {
	if err := p.Validate(); err != nil {
		return sim.RunResult{}, 0, err
	}
	netCfg := cfg.Network
	if cfg.DeriveRunSeeds {
		netCfg.Key = netCfg.Key.Derive(fmt.Sprintf("run_%d_%d", p.StaffPerSlot, p.SlotDurationHours))
	}

	n, err := sim.NewOfficeHoursNetwork(p.StaffPerSlot, netCfg)
	if err != nil {
		return sim.RunResult{}, 0, fmt.Errorf("staffing %s: %w", p, err)
	}
	var st *trace.SimulationTrace
	if cfg.TraceLevel.Enabled() {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
		n.SetTrace(st)
	}

	n.StartCollectingData()
	horizon := p.WindowMinutes() * float64(cfg.Repetitions)
	if err := n.Simulate(horizon); err != nil {
		return sim.RunResult{}, n.Steps(), fmt.Errorf("staffing %s: %w", p, err)
	}

	if st != nil {
		summary := trace.Summarize(st)
		logrus.WithFields(logrus.Fields{
			"params":         p.String(),
			"decisions":      summary.TotalDecisions,
			"distribution":   summary.TargetDistribution,
			"meanChosenLoad": summary.MeanChosenLoad,
			"maxChosenLoad":  summary.MaxChosenLoad,
		}).Info("routing trace")
	}

	res, err := sim.Extract(n.QueueData(), p, cfg.Scoring)
	return res, n.Steps(), err
}

// Run evaluates every generated parameter in parallel and picks the best.
// No-data runs are kept in Results with NoData set and never win. Any other
// failure cancels the remaining runs and is returned.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params := GenerateParams(cfg.Budget)
	logrus.Infof("Evaluating %d staffing parameters for a budget of %d staff-hours", len(params), cfg.Budget.Total())

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]sim.RunResult, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range params {
		i, p := i, p // per-iteration copies (go.mod targets go1.21 semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, steps, err := runOne(p, cfg)
			cfg.Metrics.observe(res, steps, err)
			switch {
			case err == nil:
				logrus.Infof("%d TA's each time slot, lasts for %d hours, %d sessions: score is %.4f",
					p.StaffPerSlot, p.SlotDurationHours, p.SlotsPerWeek, res.Score)
			case errors.Is(err, sim.ErrNoData):
				logrus.Warnf("Skipping %s: %v", p, err)
			default:
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	for _, r := range results {
		if r.NoData {
			report.NoData++
		}
	}
	report.Best, report.HasBest = SelectBest(results)
	return report, nil
}

// SelectBest returns the highest-scoring result that has data.
// Ties go to the first one encountered. ok is false if none has data.
func SelectBest(results []sim.RunResult) (best sim.RunResult, ok bool) {
	for _, r := range results {
		if r.NoData {
			continue
		}
		if !ok || r.Score > best.Score {
			best, ok = r, true
		}
	}
	return best, ok
}
