package sim

import "fmt"

// RoutingSnapshot is a lightweight view of a server's state at dispatch time.
type RoutingSnapshot struct {
	Index       int
	QueueLength int
	InService   int
}

// Load returns the number of agents at the station: waiting plus in service.
func (s RoutingSnapshot) Load() int {
	return s.QueueLength + s.InService
}

// RoutingDecision encapsulates the dispatcher's choice for one agent.
type RoutingDecision struct {
	Target int    // station index; must match a snapshot Index
	Reason string // human-readable explanation
}

// RoutingPolicy decides which server receives an arriving agent.
type RoutingPolicy interface {
	Route(snapshots []RoutingSnapshot) RoutingDecision
}

// LeastLoaded routes to the server with the fewest agents in system.
// Ties are broken by first occurrence in snapshot order (lowest index).
type LeastLoaded struct{}

// Route implements RoutingPolicy for LeastLoaded.
func (ll *LeastLoaded) Route(snapshots []RoutingSnapshot) RoutingDecision {
	if len(snapshots) == 0 {
		panic("LeastLoaded.Route: empty snapshots")
	}

	minLoad := snapshots[0].Load()
	target := snapshots[0]

	for i := 1; i < len(snapshots); i++ {
		load := snapshots[i].Load()
		if load < minLoad {
			minLoad = load
			target = snapshots[i]
		}
	}

	return RoutingDecision{
		Target: target.Index,
		Reason: fmt.Sprintf("least-loaded (load=%d)", minLoad),
	}
}

// snapshot captures a server's routing-relevant state.
func (s *Station) snapshot() RoutingSnapshot {
	inService := 0
	if s.inService != nil {
		inService = 1
	}
	return RoutingSnapshot{Index: s.index, QueueLength: s.QueueLength(), InService: inService}
}
