package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// StationKind distinguishes the network's entry point from its servers.
type StationKind int

const (
	// KindDispatcher has no service capacity of its own; it generates external
	// arrivals and hands each one to a server immediately.
	KindDispatcher StationKind = iota
	// KindServer is a single-server FIFO queue fed only by the dispatcher.
	KindServer
)

func (k StationKind) String() string {
	switch k {
	case KindDispatcher:
		return "dispatcher"
	case KindServer:
		return "server"
	default:
		return fmt.Sprintf("StationKind(%d)", int(k))
	}
}

// Agent is one student visiting the network. It lives only until departure.
type Agent struct {
	ID            int
	ArrivalTime   float64
	queueAtArrive int
	totalAtArrive int
	serviceStart  float64
}

// Station is a single service point in the network.
//
// Thread-safety: NOT thread-safe. Owned by one Network.
type Station struct {
	index    int
	kind     StationKind
	arrivals ArrivalProcess // dispatcher only
	service  ServiceProcess

	waiting   []*Agent
	inService *Agent

	nextArrival   float64 // +Inf when no arrival is pending
	nextDeparture float64 // +Inf when idle

	collecting bool
	events     []Event
	served     int
}

// NewDispatcher creates the entry station with its external arrival process.
func NewDispatcher(index int, arrivals ArrivalProcess) *Station {
	return &Station{
		index:         index,
		kind:          KindDispatcher,
		arrivals:      arrivals,
		service:       ServiceProcess{Kind: ServiceImmediate},
		nextArrival:   math.Inf(1),
		nextDeparture: math.Inf(1),
	}
}

// NewServer creates a single-server FIFO station.
func NewServer(index int, service ServiceProcess) *Station {
	return &Station{
		index:         index,
		kind:          KindServer,
		service:       service,
		nextArrival:   math.Inf(1),
		nextDeparture: math.Inf(1),
	}
}

// Index returns the station's position in the network.
func (s *Station) Index() int { return s.index }

// Kind returns whether this is the dispatcher or a server.
func (s *Station) Kind() StationKind { return s.kind }

// QueueLength returns the number of agents waiting, excluding the one in service.
func (s *Station) QueueLength() int { return len(s.waiting) }

// TotalInSystem returns waiting agents plus the one in service.
func (s *Station) TotalInSystem() int {
	if s.inService != nil {
		return len(s.waiting) + 1
	}
	return len(s.waiting)
}

// Served returns the number of departures since construction.
func (s *Station) Served() int { return s.served }

// NextEventTime returns the station's earliest pending event time.
// ok is false when the station has nothing pending at or before horizon.
func (s *Station) NextEventTime(horizon float64) (t float64, ok bool) {
	t = math.Min(s.nextArrival, s.nextDeparture)
	if t > horizon {
		return math.Inf(1), false
	}
	return t, true
}

// Events returns a copy of the station's collected departures, in append order.
func (s *Station) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// scheduleArrival draws the dispatcher's next external arrival after t.
func (s *Station) scheduleArrival(t float64, rng *rand.Rand) float64 {
	s.nextArrival = s.arrivals.Next(t, rng)
	return s.nextArrival
}

// dispatch records the dispatcher's pass-through of an agent arriving at t.
// Service is immediate, so arrival, start and departure coincide.
func (s *Station) dispatch(a *Agent) {
	s.nextArrival = math.Inf(1)
	s.served++
	if s.collecting {
		s.events = append(s.events, Event{
			ArrivalTime:      a.ArrivalTime,
			ServiceStartTime: a.ArrivalTime,
			DepartureTime:    a.ArrivalTime,
			StationIndex:     s.index,
		})
	}
}

// arrive admits an agent at time t. If the server was idle, service starts
// at once and the departure time is returned with started=true.
func (s *Station) arrive(a *Agent, t float64, rng *rand.Rand) (departure float64, started bool) {
	a.ArrivalTime = t
	a.queueAtArrive = s.QueueLength()
	a.totalAtArrive = s.TotalInSystem()
	if s.inService == nil {
		return s.startService(a, t, rng), true
	}
	s.waiting = append(s.waiting, a)
	return 0, false
}

func (s *Station) startService(a *Agent, t float64, rng *rand.Rand) float64 {
	a.serviceStart = t
	s.inService = a
	s.nextDeparture = s.service.Completion(t, rng)
	return s.nextDeparture
}

// depart completes the agent in service at time t and starts the next one.
// Returns the next departure time with started=true when the queue was non-empty.
func (s *Station) depart(t float64, rng *rand.Rand) (next float64, started bool) {
	a := s.inService
	if a == nil {
		panic(fmt.Sprintf("station %d: departure at %v with no agent in service", s.index, t))
	}
	s.inService = nil
	s.nextDeparture = math.Inf(1)
	s.served++
	if s.collecting {
		s.events = append(s.events, Event{
			ArrivalTime:            a.ArrivalTime,
			ServiceStartTime:       a.serviceStart,
			DepartureTime:          t,
			QueueLengthAtArrival:   a.queueAtArrive,
			TotalInSystemAtArrival: a.totalAtArrive,
			StationIndex:           s.index,
		})
	}
	if len(s.waiting) == 0 {
		return 0, false
	}
	head := s.waiting[0]
	s.waiting[0] = nil
	s.waiting = s.waiting[1:]
	return s.startService(head, t, rng), true
}
