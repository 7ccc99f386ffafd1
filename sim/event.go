package sim

import "sort"

// DispatcherIndex is the station index of the network's entry point.
const DispatcherIndex = 0

// Event is the record a station emits when an agent departs.
// Times are in simulation minutes. Queue length and total in system are the
// values the agent saw on arrival, before joining.
type Event struct {
	ArrivalTime            float64
	ServiceStartTime       float64
	DepartureTime          float64
	QueueLengthAtArrival   int
	TotalInSystemAtArrival int
	StationIndex           int // 0 = dispatcher, 1..tn = service stations
}

// WaitTime returns the time spent queued before service.
func (e Event) WaitTime() float64 {
	return e.ServiceStartTime - e.ArrivalTime
}

// SortByArrival orders events by arrival time, then station index.
// Stable, so equal keys keep their append order.
func SortByArrival(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ArrivalTime != events[j].ArrivalTime {
			return events[i].ArrivalTime < events[j].ArrivalTime
		}
		return events[i].StationIndex < events[j].StationIndex
	})
}

// eventKind orders simultaneous pending events on the same station.
type eventKind int

const (
	kindArrival eventKind = iota
	kindDeparture
)

func (k eventKind) String() string {
	switch k {
	case kindArrival:
		return "arrival"
	case kindDeparture:
		return "departure"
	default:
		return "unknown"
	}
}

// pendingEvent is an entry in the network's event heap.
type pendingEvent struct {
	time    float64
	station int
	kind    eventKind
}
