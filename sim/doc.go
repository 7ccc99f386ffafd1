// Package sim provides the discrete-event engine behind the office-hours
// queue simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: arrival (thinned inhomogeneous Poisson) and service laws
//   - station.go: dispatcher and single-server FIFO stations
//   - network.go: the global event loop and event-log collection
//
// # Architecture
//
// A Network is one dispatcher (station 0) feeding tn service stations
// (1..tn). NewOfficeHoursNetwork builds one from a NetworkConfig. Every
// departure produces an Event; Extract filters the resulting log to one slot
// window and scores it with a ScoreConfig.
//
// Sub-packages:
//   - sim/trace/: dispatcher routing-decision records
//   - sim/sweep/: enumeration and parallel evaluation of staffing parameters
//
// All randomness in a run comes from one stream derived from its
// SimulationKey, so identical keys and configurations reproduce identical
// event logs.
package sim
