package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ohq-sim/sim/trace"
)

// DefaultMaxSteps caps the events a single run may apply.
const DefaultMaxSteps int64 = 50_000_000

// Network owns a dispatcher and its servers and advances them in virtual time.
//
// Thread-safety: NOT thread-safe. A Network, its stations and its random
// stream belong to a single run.
type Network struct {
	stations []*Station
	servers  []*Station
	entry    *Station
	router   RoutingPolicy
	rng      *rand.Rand

	events *EventHeap
	clock  float64
	steps  int64

	// MaxSteps bounds the number of applied events; <= 0 disables the cap.
	MaxSteps int64

	nextAgentID int
	trace       *trace.SimulationTrace
}

// NewNetwork wires stations into a network. stations[i] must have index i.
// At least one dispatcher and one server are required.
func NewNetwork(stations []*Station, rng *rand.Rand) (*Network, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random stream", ErrInvalidTopology)
	}
	n := &Network{
		stations: stations,
		router:   &LeastLoaded{},
		rng:      rng,
		events:   NewEventHeap(),
		MaxSteps: DefaultMaxSteps,
	}
	dispatchers := 0
	for i, s := range stations {
		if s == nil {
			return nil, fmt.Errorf("%w: station %d is nil", ErrInvalidTopology, i)
		}
		if s.index != i {
			return nil, fmt.Errorf("%w: station at position %d has index %d", ErrInvalidTopology, i, s.index)
		}
		switch s.kind {
		case KindDispatcher:
			if err := s.arrivals.Validate(); err != nil {
				return nil, fmt.Errorf("dispatcher %d: %w", i, err)
			}
			dispatchers++
		case KindServer:
			if err := s.service.Validate(); err != nil {
				return nil, fmt.Errorf("server %d: %w", i, err)
			}
			n.servers = append(n.servers, s)
		}
	}
	if dispatchers != 1 {
		return nil, fmt.Errorf("%w: need exactly one dispatcher, got %d", ErrInvalidTopology, dispatchers)
	}
	if len(n.servers) == 0 {
		return nil, fmt.Errorf("%w: need at least one server", ErrInvalidTopology)
	}
	return n, nil
}

// Initialize designates the external entry point and seeds its first arrival.
func (n *Network) Initialize(entry int) error {
	if entry < 0 || entry >= len(n.stations) {
		return fmt.Errorf("%w: entry station %d out of range", ErrInvalidTopology, entry)
	}
	s := n.stations[entry]
	if s.kind != KindDispatcher {
		return fmt.Errorf("%w: entry station %d is a %s", ErrInvalidTopology, entry, s.kind)
	}
	if n.entry != nil {
		return fmt.Errorf("%w: network already initialized", ErrInvalidTopology)
	}
	n.entry = s
	n.events.Schedule(pendingEvent{time: s.scheduleArrival(n.clock, n.rng), station: s.index, kind: kindArrival})
	return nil
}

// SetTrace attaches a routing-decision trace. nil disables tracing.
func (n *Network) SetTrace(t *trace.SimulationTrace) {
	n.trace = t
}

// StartCollectingData makes every station retain completed-service events.
func (n *Network) StartCollectingData() {
	for _, s := range n.stations {
		s.collecting = true
	}
}

// StopCollectingData stops retaining events; already collected ones are kept.
func (n *Network) StopCollectingData() {
	for _, s := range n.stations {
		s.collecting = false
	}
}

// QueueData returns the collected events of all stations concatenated in
// station order. Positions carry no global time order; use timestamps.
func (n *Network) QueueData() []Event {
	total := 0
	for _, s := range n.stations {
		total += len(s.events)
	}
	out := make([]Event, 0, total)
	for _, s := range n.stations {
		out = append(out, s.events...)
	}
	return out
}

// Clock returns the time of the last applied event.
func (n *Network) Clock() float64 { return n.clock }

// Steps returns the number of events applied so far.
func (n *Network) Steps() int64 { return n.steps }

// Station returns the station at index i.
func (n *Network) Station(i int) *Station { return n.stations[i] }

// NumServers returns the number of service stations.
func (n *Network) NumServers() int { return len(n.servers) }

// Simulate applies pending events in global order until none remains at or
// before horizon. Agents still in service at the horizon never depart and
// therefore never appear in QueueData. Simulate may be called again with a
// later horizon to continue the run.
func (n *Network) Simulate(horizon float64) error {
	if n.entry == nil {
		return ErrNotInitialized
	}
	for {
		next, ok := n.events.Peek()
		if !ok || next.time > horizon {
			break
		}
		n.events.PopNext()

		if next.time < n.clock {
			panic(fmt.Sprintf("Clock went backwards: %v < %v", next.time, n.clock))
		}
		n.clock = next.time

		n.steps++
		if n.MaxSteps > 0 && n.steps > n.MaxSteps {
			return fmt.Errorf("%w: %d events applied before t=%v", ErrStepLimitExceeded, n.MaxSteps, n.clock)
		}

		switch next.kind {
		case kindArrival:
			n.handleArrival(n.stations[next.station])
		case kindDeparture:
			n.handleDeparture(n.stations[next.station])
		}
	}
	logrus.Debugf("network simulated to t=%.2f: %d events, %d agents dispatched", horizon, n.steps, n.nextAgentID)
	return nil
}

// handleArrival passes a new external agent through the dispatcher to the
// least-loaded server, then draws the next external arrival.
func (n *Network) handleArrival(d *Station) {
	a := &Agent{ID: n.nextAgentID, ArrivalTime: n.clock}
	n.nextAgentID++
	d.dispatch(a)

	snapshots := make([]RoutingSnapshot, len(n.servers))
	for i, s := range n.servers {
		snapshots[i] = s.snapshot()
	}
	decision := n.router.Route(snapshots)
	target := n.stations[decision.Target]
	logrus.Tracef("<< Arrival: agent %d at %.3f → station %d (%s)", a.ID, n.clock, target.index, decision.Reason)

	if n.trace != nil {
		loads := make([]int, len(snapshots))
		for i, snap := range snapshots {
			loads[i] = snap.Load()
		}
		n.trace.RecordRouting(trace.RoutingRecord{
			AgentID:       a.ID,
			Clock:         n.clock,
			ChosenStation: target.index,
			Reason:        decision.Reason,
			Loads:         loads,
		})
	}

	if dep, started := target.arrive(a, n.clock, n.rng); started {
		n.events.Schedule(pendingEvent{time: dep, station: target.index, kind: kindDeparture})
	}
	n.events.Schedule(pendingEvent{time: d.scheduleArrival(n.clock, n.rng), station: d.index, kind: kindArrival})
}

func (n *Network) handleDeparture(s *Station) {
	if dep, started := s.depart(n.clock, n.rng); started {
		n.events.Schedule(pendingEvent{time: dep, station: s.index, kind: kindDeparture})
	}
}
