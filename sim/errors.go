package sim

import "errors"

var (
	// ErrNoData is returned when a filtered window contains no served students,
	// leaving the average waiting time undefined.
	ErrNoData = errors.New("no students served in window")

	// ErrInvalidTopology is returned for networks that cannot be simulated,
	// e.g. fewer than one service station.
	ErrInvalidTopology = errors.New("invalid network topology")

	// ErrInvalidProcess is returned for malformed arrival or service processes.
	ErrInvalidProcess = errors.New("invalid process configuration")

	// ErrNotInitialized is returned by Simulate before Initialize was called.
	ErrNotInitialized = errors.New("network not initialized")

	// ErrStepLimitExceeded is returned when a run applies more events than
	// its configured step cap.
	ErrStepLimitExceeded = errors.New("simulation step limit exceeded")
)
