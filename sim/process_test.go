package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRate_KnownValues(t *testing.T) {
	r := ReferenceRate()

	assert.InDelta(t, 0.1, r.At(0), 1e-12)
	assert.InDelta(t, 0.6, r.At(1), 1e-12)
	assert.InDelta(t, 0.1, r.At(2), 1e-12)
	assert.InDelta(t, 0.35, r.At(0.5), 1e-12)
	assert.InDelta(t, 0.6, r.Max(), 1e-12)
}

func TestRateFunction_Validate(t *testing.T) {
	tests := []struct {
		name string
		rate RateFunction
		ok   bool
	}{
		{"reference", ReferenceRate(), true},
		{"constant", RateFunction{Base: 1, PeriodMinutes: 1}, true},
		{"negative base", RateFunction{Base: -0.1, Amplitude: 1, PeriodMinutes: 2}, false},
		{"negative amplitude", RateFunction{Base: 1, Amplitude: -1, PeriodMinutes: 2}, false},
		{"zero period", RateFunction{Base: 0.1, Amplitude: 0.5}, false},
		{"identically zero", RateFunction{PeriodMinutes: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rate.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidProcess), "got %v", err)
			}
		})
	}
}

func TestArrivalProcess_Validate_RejectsBadBounds(t *testing.T) {
	a := ReferenceArrivals()
	require.NoError(t, a.Validate())

	a.ThinningBound = 0
	assert.ErrorIs(t, a.Validate(), ErrInvalidProcess)

	a.ThinningBound = 0.5 // below max rate 0.6
	assert.ErrorIs(t, a.Validate(), ErrInvalidProcess)

	a = ReferenceArrivals()
	a.Kind = "batch"
	assert.ErrorIs(t, a.Validate(), ErrInvalidProcess)
}

func TestArrivalProcess_Next_StrictlyIncreasing(t *testing.T) {
	rng := NewSimulationKey(42).NewStream()
	a := ReferenceArrivals()

	prev := 0.0
	for i := 0; i < 1000; i++ {
		next := a.Next(prev, rng)
		if next <= prev {
			t.Fatalf("arrival %d at %v does not follow %v", i, next, prev)
		}
		prev = next
	}
}

func TestArrivalProcess_Next_CountMatchesIntegratedRate(t *testing.T) {
	// GIVEN the reference process, whose rate integrates to 0.35 per minute
	rng := NewSimulationKey(42).NewStream()
	a := ReferenceArrivals()
	horizon := 4000.0

	// WHEN arrivals are drawn up to the horizon
	count := 0
	for at := a.Next(0, rng); at <= horizon; at = a.Next(at, rng) {
		count++
	}

	// THEN the count is within 10% of 0.35 * horizon
	expected := 0.35 * horizon
	if math.Abs(float64(count)-expected)/expected > 0.10 {
		t.Errorf("arrivals = %d, want ≈ %.0f (within 10%%)", count, expected)
	}
}

func TestArrivalProcess_Next_ConcentratesAtPeaks(t *testing.T) {
	// GIVEN the reference rate peaks at odd minutes (0.6) and dips at even ones (0.1)
	rng := NewSimulationKey(7).NewStream()
	a := ReferenceArrivals()

	// WHEN arrivals are classified by distance to the nearest peak
	nearPeak, nearTrough := 0, 0
	for at := a.Next(0, rng); at <= 20000; at = a.Next(at, rng) {
		phase := math.Mod(at, 2)
		if math.Abs(phase-1) < 0.25 {
			nearPeak++
		} else if phase < 0.25 || phase > 1.75 {
			nearTrough++
		}
	}

	// THEN peak windows see clearly more arrivals than trough windows
	assert.Greater(t, nearPeak, 2*nearTrough, "peak=%d trough=%d", nearPeak, nearTrough)
}

func TestServiceProcess_Exponential_MeanMatches(t *testing.T) {
	rng := NewSimulationKey(42).NewStream()
	s := ReferenceService()

	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		d := s.Completion(100, rng) - 100
		if d < 0 {
			t.Fatalf("negative service duration %v", d)
		}
		sum += d
	}
	mean := sum / float64(n)
	if math.Abs(mean-10)/10 > 0.03 {
		t.Errorf("mean service = %.3f, want ≈ 10 (within 3%%)", mean)
	}
}

func TestServiceProcess_Immediate_ReturnsStart(t *testing.T) {
	s := ServiceProcess{Kind: ServiceImmediate}
	assert.Equal(t, 12.5, s.Completion(12.5, NewSimulationKey(1).NewStream()))
}

func TestServiceProcess_Validate(t *testing.T) {
	assert.NoError(t, ReferenceService().Validate())
	assert.NoError(t, ServiceProcess{Kind: ServiceImmediate}.Validate())
	assert.ErrorIs(t, ServiceProcess{Kind: ServiceExponential}.Validate(), ErrInvalidProcess)
	assert.ErrorIs(t, ServiceProcess{Kind: "gamma", Mean: 1}.Validate(), ErrInvalidProcess)
}
