// sim/metrics.go
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StaffingParameter is one way to split the weekly staffing budget.
type StaffingParameter struct {
	StaffPerSlot      int // tn
	SlotDurationHours int // dt
	SlotsPerWeek      int // sn
}

// String renders the triple as "(tn, dt, sn)".
func (p StaffingParameter) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.StaffPerSlot, p.SlotDurationHours, p.SlotsPerWeek)
}

// WindowMinutes returns the slot length in simulation minutes.
func (p StaffingParameter) WindowMinutes() float64 {
	return float64(p.SlotDurationHours) * 60
}

// StaffHours returns tn * dt * sn.
func (p StaffingParameter) StaffHours() int {
	return p.StaffPerSlot * p.SlotDurationHours * p.SlotsPerWeek
}

// Validate requires every component to be >= 1.
func (p StaffingParameter) Validate() error {
	if p.StaffPerSlot < 1 || p.SlotDurationHours < 1 || p.SlotsPerWeek < 1 {
		return fmt.Errorf("%w: staffing parameter %s has a component < 1", ErrInvalidTopology, p)
	}
	return nil
}

// RunResult is the scored outcome of one staffing parameter.
// NoData marks runs whose window served nobody; their averages and score are zero
// and must not be compared.
type RunResult struct {
	Params             StaffingParameter
	AverageWaitTime    float64
	AverageOvertime    float64
	AverageQueueLength float64
	StudentsServed     int
	Score              float64
	NoData             bool
}

// FilterEvents restricts an event log to arrivals within the first slot
// window (arrival <= dt*60) at stations 0..tn, bucketed by station index.
// Each bucket is sorted by arrival time.
func FilterEvents(log []Event, tn, dt int) [][]Event {
	buckets := make([][]Event, tn+1)
	window := float64(dt) * 60
	for _, e := range log {
		if e.StationIndex < 0 || e.StationIndex > tn || e.ArrivalTime > window {
			continue
		}
		buckets[e.StationIndex] = append(buckets[e.StationIndex], e)
	}
	for _, b := range buckets {
		SortByArrival(b)
	}
	return buckets
}

// AverageWaitTime is the mean of (service start − arrival) over every event
// at the service stations 1..len(buckets)-1. Returns ErrNoData if none.
func AverageWaitTime(buckets [][]Event) (float64, error) {
	var waits []float64
	for i := 1; i < len(buckets); i++ {
		for _, e := range buckets[i] {
			waits = append(waits, e.WaitTime())
		}
	}
	if len(waits) == 0 {
		return 0, ErrNoData
	}
	return stat.Mean(waits, nil), nil
}

// AverageQueueLength is the mean queue length seen by arriving students at
// the service stations. Zero when no one was served.
func AverageQueueLength(buckets [][]Event) float64 {
	var lengths []float64
	for i := 1; i < len(buckets); i++ {
		for _, e := range buckets[i] {
			lengths = append(lengths, float64(e.QueueLengthAtArrival))
		}
	}
	if len(lengths) == 0 {
		return 0
	}
	return stat.Mean(lengths, nil)
}

// AverageOvertime averages, over all tn service stations, how far the last
// departure overran the slot end: max(0, lastDeparture − dt*60). Stations
// that served nobody count as zero and still sit in the denominator.
func AverageOvertime(buckets [][]Event, dt int) float64 {
	if len(buckets) < 2 {
		return 0
	}
	window := float64(dt) * 60
	overtime := make([]float64, len(buckets)-1)
	for i := 1; i < len(buckets); i++ {
		last := math.Inf(-1)
		for _, e := range buckets[i] {
			last = math.Max(last, e.DepartureTime)
		}
		overtime[i-1] = math.Max(0, last-window)
	}
	return stat.Mean(overtime, nil)
}

// StudentsServed projects the dispatcher's in-window arrivals to a weekly
// total by multiplying by the slots per week.
func StudentsServed(buckets [][]Event, sn int) int {
	if len(buckets) == 0 {
		return 0
	}
	return len(buckets[DispatcherIndex]) * sn
}

// Extract turns one run's event log into a scored RunResult.
// When no student was served in the window the result is flagged NoData and
// the returned error wraps ErrNoData.
func Extract(log []Event, p StaffingParameter, scoring ScoreConfig) (RunResult, error) {
	if err := p.Validate(); err != nil {
		return RunResult{}, err
	}
	buckets := FilterEvents(log, p.StaffPerSlot, p.SlotDurationHours)
	res := RunResult{
		Params:         p,
		StudentsServed: StudentsServed(buckets, p.SlotsPerWeek),
	}

	wait, err := AverageWaitTime(buckets)
	if err != nil {
		res.NoData = true
		return res, fmt.Errorf("staffing %s: %w", p, err)
	}
	res.AverageWaitTime = wait
	res.AverageOvertime = AverageOvertime(buckets, p.SlotDurationHours)
	res.AverageQueueLength = AverageQueueLength(buckets)
	res.Score = scoring.Score(res.AverageWaitTime, res.AverageOvertime, res.StudentsServed)
	return res, nil
}
