// Package sweep evaluates every way of splitting a weekly staffing budget
// into (staff per slot, slot duration, slots per week) triples and picks the
// best-scoring one.
package sweep

import (
	"fmt"

	"github.com/inference-sim/ohq-sim/sim"
)

// Budget describes the fixed weekly staffing resources.
type Budget struct {
	NumTA         int `yaml:"num_ta"`          // staff available
	UnitTimeHours int `yaml:"unit_time_hours"` // hours each staff member works per week
	MaxSlotHours  int `yaml:"max_slot_hours"`  // longest slot considered
}

// DefaultBudget returns 25 staff working 2 hours each, slots of up to 8 hours.
func DefaultBudget() Budget {
	return Budget{NumTA: 25, UnitTimeHours: 2, MaxSlotHours: 8}
}

// Total returns the weekly staff-hours, NumTA * UnitTimeHours.
func (b Budget) Total() int {
	return b.NumTA * b.UnitTimeHours
}

// Validate requires every field to be >= 1.
func (b Budget) Validate() error {
	if b.NumTA < 1 {
		return fmt.Errorf("num_ta must be >= 1, got %d", b.NumTA)
	}
	if b.UnitTimeHours < 1 {
		return fmt.Errorf("unit_time_hours must be >= 1, got %d", b.UnitTimeHours)
	}
	if b.MaxSlotHours < 1 {
		return fmt.Errorf("max_slot_hours must be >= 1, got %d", b.MaxSlotHours)
	}
	return nil
}

// GenerateParams enumerates tn in [1, NumTA] and dt in [1, MaxSlotHours],
// with sn = Total / (tn*dt), keeping triples where sn >= 1.
// Order is tn-major, then dt, which fixes tie-breaking for the best score.
func GenerateParams(b Budget) []sim.StaffingParameter {
	total := b.Total()
	var params []sim.StaffingParameter
	for tn := 1; tn <= b.NumTA; tn++ {
		for dt := 1; dt <= b.MaxSlotHours; dt++ {
			sn := total / (tn * dt)
			if sn >= 1 {
				params = append(params, sim.StaffingParameter{
					StaffPerSlot:      tn,
					SlotDurationHours: dt,
					SlotsPerWeek:      sn,
				})
			}
		}
	}
	return params
}
