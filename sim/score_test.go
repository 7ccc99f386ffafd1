package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/ohq-sim/sim/internal/testutil"
)

func TestScoreConfig_SubScores_KnownValues(t *testing.T) {
	c := DefaultScoreConfig()

	assert.Equal(t, 100.0, c.WaitScore(0), "intercept above 100 is clamped")
	assert.Equal(t, 0.0, c.WaitScore(180), "≈0 at three hours")
	testutil.AssertFloat64Equal(t, "wait score at 60", 105.88-0.58823*60, c.WaitScore(60), 1e-12)

	assert.Equal(t, 100.0, c.OvertimeScore(0))
	testutil.AssertFloat64Equal(t, "overtime score at 50", 70, c.OvertimeScore(50), 1e-12)
	assert.Equal(t, 0.0, c.OvertimeScore(500))

	testutil.AssertFloat64Equal(t, "throughput at 125", 50, c.ThroughputScore(125), 1e-12)
	assert.Equal(t, 100.0, c.ThroughputScore(250), "full credit at two-thirds of the class")
	assert.Equal(t, 100.0, c.ThroughputScore(1000))
}

func TestScoreConfig_Score_IsMeanOfSubScores(t *testing.T) {
	c := DefaultScoreConfig()
	testutil.AssertFloat64Equal(t, "perfect", 100, c.Score(0, 0, 250), 1e-12)
	testutil.AssertFloat64Equal(t, "mixed", (100.0+70.0+50.0)/3, c.Score(0, 50, 125), 1e-12)
}

func TestScoreConfig_Score_AlwaysBounded(t *testing.T) {
	c := DefaultScoreConfig()
	for _, wait := range []float64{-50, 0, 10, 90, 180, 1e6} {
		for _, overtime := range []float64{-10, 0, 30, 200, 1e6} {
			for _, served := range []int{-5, 0, 100, 250, 10000} {
				testutil.AssertInRange(t, "score", c.Score(wait, overtime, served), 0, 100)
			}
		}
	}
}

func TestScoreConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultScoreConfig().Validate())

	c := DefaultScoreConfig()
	c.ClassSize = 0
	assert.Error(t, c.Validate())

	c = DefaultScoreConfig()
	c.ClassFraction = 0
	assert.Error(t, c.Validate())
}
