// Package trace provides decision-trace recording for dispatcher routing analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoutingRecord captures a single dispatcher routing decision.
type RoutingRecord struct {
	AgentID       int
	Clock         float64 // simulation minutes
	ChosenStation int
	Reason        string
	Loads         []int // agents in system per server at decision time, in server order
}

// ChosenLoad returns the load of the chosen station at decision time.
// Servers are numbered from 1, so ChosenStation-1 indexes Loads.
// Returns -1 if the record carries no load for the chosen station.
func (r RoutingRecord) ChosenLoad() int {
	i := r.ChosenStation - 1
	if i < 0 || i >= len(r.Loads) {
		return -1
	}
	return r.Loads[i]
}
