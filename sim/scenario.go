package sim

import "fmt"

// NetworkConfig holds everything needed to build an office-hours network
// besides the number of staff per slot.
type NetworkConfig struct {
	Key      SimulationKey
	Arrivals ArrivalProcess
	Service  ServiceProcess
	MaxSteps int64 // <= 0 disables the step cap
}

// DefaultNetworkConfig returns the reference configuration: seed 13,
// 0.1 + 0.5·sin²(πt/2) arrivals thinned at 100, Exponential(10) service.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Key:      NewSimulationKey(DefaultSeed),
		Arrivals: ReferenceArrivals(),
		Service:  ReferenceService(),
		MaxSteps: DefaultMaxSteps,
	}
}

// Validate checks the arrival and service processes.
func (c NetworkConfig) Validate() error {
	if err := c.Arrivals.Validate(); err != nil {
		return fmt.Errorf("arrivals: %w", err)
	}
	if err := c.Service.Validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

// NewOfficeHoursNetwork builds one dispatcher (station 0) feeding tn
// single-server stations (1..tn), initialized at the dispatcher and ready
// for Simulate.
func NewOfficeHoursNetwork(tn int, cfg NetworkConfig) (*Network, error) {
	if tn < 1 {
		return nil, fmt.Errorf("%w: staff per slot must be >= 1, got %d", ErrInvalidTopology, tn)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stations := make([]*Station, 0, tn+1)
	stations = append(stations, NewDispatcher(DispatcherIndex, cfg.Arrivals))
	for i := 1; i <= tn; i++ {
		stations = append(stations, NewServer(i, cfg.Service))
	}

	n, err := NewNetwork(stations, cfg.Key.NewStream())
	if err != nil {
		return nil, err
	}
	n.MaxSteps = cfg.MaxSteps
	if err := n.Initialize(DispatcherIndex); err != nil {
		return nil, err
	}
	return n, nil
}
