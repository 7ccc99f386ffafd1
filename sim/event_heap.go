package sim

import "container/heap"

// EventHeap is a priority queue of pending events with deterministic ordering.
// Ordering: time → station index → kind (arrival before departure).
type EventHeap struct {
	events []pendingEvent
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]pendingEvent, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	if ei.station != ej.station {
		return ei.station < ej.station
	}
	return ei.kind < ej.kind
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x interface{}) {
	h.events = append(h.events, x.(pendingEvent))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() interface{} {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap
func (h *EventHeap) Schedule(e pendingEvent) {
	heap.Push(h, e)
}

// PopNext removes and returns the next event. ok is false when empty.
func (h *EventHeap) PopNext() (e pendingEvent, ok bool) {
	if h.Len() == 0 {
		return pendingEvent{}, false
	}
	return heap.Pop(h).(pendingEvent), true
}

// Peek returns the next event without removing it
func (h *EventHeap) Peek() (e pendingEvent, ok bool) {
	if h.Len() == 0 {
		return pendingEvent{}, false
	}
	return h.events[0], true
}
