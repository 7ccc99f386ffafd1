package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// RateFunction is the periodic arrival intensity, in students per minute:
//
//	rate(t) = Base + Amplitude * sin²(π t / PeriodMinutes)
type RateFunction struct {
	Base          float64 `yaml:"base"`
	Amplitude     float64 `yaml:"amplitude"`
	PeriodMinutes float64 `yaml:"period_minutes"`
}

// ReferenceRate returns 0.1 + 0.5·sin²(π t / 2).
func ReferenceRate() RateFunction {
	return RateFunction{Base: 0.1, Amplitude: 0.5, PeriodMinutes: 2}
}

// At evaluates the intensity at simulation minute t.
func (r RateFunction) At(t float64) float64 {
	s := math.Sin(math.Pi * t / r.PeriodMinutes)
	return r.Base + r.Amplitude*s*s
}

// Max returns the supremum of the intensity over all t.
func (r RateFunction) Max() float64 {
	return r.Base + r.Amplitude
}

// Validate checks that the intensity is non-negative and non-degenerate.
func (r RateFunction) Validate() error {
	if r.Base < 0 || r.Amplitude < 0 {
		return fmt.Errorf("%w: rate base and amplitude must be >= 0, got base=%v amplitude=%v",
			ErrInvalidProcess, r.Base, r.Amplitude)
	}
	if r.PeriodMinutes <= 0 {
		return fmt.Errorf("%w: rate period must be > 0, got %v", ErrInvalidProcess, r.PeriodMinutes)
	}
	if r.Max() <= 0 {
		return fmt.Errorf("%w: rate is identically zero", ErrInvalidProcess)
	}
	return nil
}

// ArrivalKind enumerates the supported external arrival processes.
type ArrivalKind string

const (
	// ArrivalInhomogeneousPoisson draws a Poisson process with a time-varying
	// intensity by thinning a homogeneous process at ThinningBound.
	ArrivalInhomogeneousPoisson ArrivalKind = "inhomogeneous-poisson"
)

// ArrivalProcess generates external arrival times for a dispatcher.
type ArrivalProcess struct {
	Kind          ArrivalKind
	Rate          RateFunction
	ThinningBound float64
}

// ReferenceArrivals returns the inhomogeneous Poisson process over
// ReferenceRate thinned against a constant bound of 100.
func ReferenceArrivals() ArrivalProcess {
	return ArrivalProcess{
		Kind:          ArrivalInhomogeneousPoisson,
		Rate:          ReferenceRate(),
		ThinningBound: 100,
	}
}

// Validate rejects unknown kinds and bounds that would bias the thinning.
func (a ArrivalProcess) Validate() error {
	switch a.Kind {
	case ArrivalInhomogeneousPoisson:
		if err := a.Rate.Validate(); err != nil {
			return err
		}
		if a.ThinningBound <= 0 {
			return fmt.Errorf("%w: thinning bound must be > 0, got %v", ErrInvalidProcess, a.ThinningBound)
		}
		if a.ThinningBound < a.Rate.Max() {
			return fmt.Errorf("%w: thinning bound %v is below the rate maximum %v",
				ErrInvalidProcess, a.ThinningBound, a.Rate.Max())
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown arrival process %q", ErrInvalidProcess, a.Kind)
	}
}

// Next returns the first arrival strictly after t.
func (a ArrivalProcess) Next(t float64, rng *rand.Rand) float64 {
	switch a.Kind {
	case ArrivalInhomogeneousPoisson:
		// Candidate points come from a homogeneous process at the bound;
		// each is kept with probability rate(t)/bound.
		for {
			t += rng.ExpFloat64() / a.ThinningBound
			if a.ThinningBound*rng.Float64() <= a.Rate.At(t) {
				return t
			}
		}
	default:
		panic(fmt.Sprintf("ArrivalProcess.Next: unknown kind %q", a.Kind))
	}
}

// ServiceKind enumerates the supported service-time laws.
type ServiceKind string

const (
	// ServiceImmediate completes service at the instant it starts.
	ServiceImmediate ServiceKind = "immediate"
	// ServiceExponential draws service durations from Exponential(Mean).
	ServiceExponential ServiceKind = "exponential"
)

// ServiceProcess maps a service start time to a completion time.
type ServiceProcess struct {
	Kind ServiceKind
	Mean float64 // minutes; ignored for ServiceImmediate
}

// ReferenceService returns Exponential(mean=10 minutes).
func ReferenceService() ServiceProcess {
	return ServiceProcess{Kind: ServiceExponential, Mean: 10}
}

// Validate rejects unknown kinds and non-positive exponential means.
func (s ServiceProcess) Validate() error {
	switch s.Kind {
	case ServiceImmediate:
		return nil
	case ServiceExponential:
		if s.Mean <= 0 {
			return fmt.Errorf("%w: exponential service mean must be > 0, got %v", ErrInvalidProcess, s.Mean)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown service process %q", ErrInvalidProcess, s.Kind)
	}
}

// Completion returns the departure time for an agent starting service at t.
func (s ServiceProcess) Completion(t float64, rng *rand.Rand) float64 {
	switch s.Kind {
	case ServiceImmediate:
		return t
	case ServiceExponential:
		return t + rng.ExpFloat64()*s.Mean
	default:
		panic(fmt.Sprintf("ServiceProcess.Completion: unknown kind %q", s.Kind))
	}
}
