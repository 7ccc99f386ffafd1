package sim

import "fmt"

// ScoreConfig holds the empirical constants of the composite strategy score.
// Each sub-score is linear in its metric and clamped to [0, 100]:
//
//	wait       = WaitIntercept − WaitSlope·avgWait
//	overtime   = OvertimeIntercept − OvertimeSlope·avgOvertime
//	throughput = served·100 / (ClassSize/ClassFraction)
type ScoreConfig struct {
	WaitIntercept     float64 `yaml:"wait_intercept"`
	WaitSlope         float64 `yaml:"wait_slope"`
	OvertimeIntercept float64 `yaml:"overtime_intercept"`
	OvertimeSlope     float64 `yaml:"overtime_slope"`
	ClassSize         int     `yaml:"class_size"`
	ClassFraction     float64 `yaml:"class_fraction"`
}

// DefaultScoreConfig returns the reference weights for a class of 375.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		WaitIntercept:     105.88,
		WaitSlope:         0.58823,
		OvertimeIntercept: 100,
		OvertimeSlope:     0.6,
		ClassSize:         375,
		ClassFraction:     1.5,
	}
}

// Validate rejects configurations whose throughput target is not positive.
func (c ScoreConfig) Validate() error {
	if c.ClassSize <= 0 {
		return fmt.Errorf("class size must be > 0, got %d", c.ClassSize)
	}
	if c.ClassFraction <= 0 {
		return fmt.Errorf("class fraction must be > 0, got %v", c.ClassFraction)
	}
	return nil
}

// WaitScore scores an average waiting time in minutes.
func (c ScoreConfig) WaitScore(avgWait float64) float64 {
	return clamp(c.WaitIntercept-c.WaitSlope*avgWait, 0, 100)
}

// OvertimeScore scores an average overtime in minutes.
func (c ScoreConfig) OvertimeScore(avgOvertime float64) float64 {
	return clamp(c.OvertimeIntercept-c.OvertimeSlope*avgOvertime, 0, 100)
}

// ThroughputScore gives full credit once served reaches ClassSize/ClassFraction.
func (c ScoreConfig) ThroughputScore(served int) float64 {
	target := float64(c.ClassSize) / c.ClassFraction
	return clamp(float64(served)*100/target, 0, 100)
}

// Score is the unweighted mean of the three clamped sub-scores; always in [0, 100].
func (c ScoreConfig) Score(avgWait, avgOvertime float64, served int) float64 {
	return (c.WaitScore(avgWait) + c.OvertimeScore(avgOvertime) + c.ThroughputScore(served)) / 3
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
