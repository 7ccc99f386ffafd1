package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/ohq-sim/sim"
)

func TestGenerateParams_BudgetInvariant(t *testing.T) {
	b := DefaultBudget()
	params := GenerateParams(b)
	require.NotEmpty(t, params)

	for _, p := range params {
		assert.GreaterOrEqual(t, p.SlotsPerWeek, 1, "%s", p)
		assert.LessOrEqual(t, p.StaffHours(), b.Total(), "%s", p)
		assert.Equal(t, b.Total()/(p.StaffPerSlot*p.SlotDurationHours), p.SlotsPerWeek, "%s", p)
		assert.GreaterOrEqual(t, p.StaffPerSlot, 1)
		assert.LessOrEqual(t, p.StaffPerSlot, b.NumTA)
		assert.GreaterOrEqual(t, p.SlotDurationHours, 1)
		assert.LessOrEqual(t, p.SlotDurationHours, b.MaxSlotHours)
	}
}

func TestGenerateParams_ReferenceScenarios(t *testing.T) {
	// GIVEN NUM_TA=25, UNIT_TIME=2 ⇒ TOTAL_BUDGET=50
	params := GenerateParams(DefaultBudget())
	assert.Equal(t, 50, DefaultBudget().Total())

	// THEN tn=5, dt=2 ⇒ sn=5 is included and tn=7, dt=8 ⇒ sn=0 is excluded
	assert.Contains(t, params, sim.StaffingParameter{StaffPerSlot: 5, SlotDurationHours: 2, SlotsPerWeek: 5})
	for _, p := range params {
		if p.StaffPerSlot == 7 && p.SlotDurationHours == 8 {
			t.Errorf("tn=7, dt=8 must be excluded, got %s", p)
		}
	}
}

func TestGenerateParams_EnumerationOrder(t *testing.T) {
	params := GenerateParams(Budget{NumTA: 3, UnitTimeHours: 2, MaxSlotHours: 3})

	// total=6: tn=1 → dt 1,2,3; tn=2 → dt 1,2,3; tn=3 → dt 1,2 (dt=3 gives sn=0)
	want := []sim.StaffingParameter{
		{StaffPerSlot: 1, SlotDurationHours: 1, SlotsPerWeek: 6},
		{StaffPerSlot: 1, SlotDurationHours: 2, SlotsPerWeek: 3},
		{StaffPerSlot: 1, SlotDurationHours: 3, SlotsPerWeek: 2},
		{StaffPerSlot: 2, SlotDurationHours: 1, SlotsPerWeek: 3},
		{StaffPerSlot: 2, SlotDurationHours: 2, SlotsPerWeek: 1},
		{StaffPerSlot: 2, SlotDurationHours: 3, SlotsPerWeek: 1},
		{StaffPerSlot: 3, SlotDurationHours: 1, SlotsPerWeek: 2},
		{StaffPerSlot: 3, SlotDurationHours: 2, SlotsPerWeek: 1},
	}
	assert.Equal(t, want, params)
}

func TestBudget_Validate(t *testing.T) {
	assert.NoError(t, DefaultBudget().Validate())
	assert.Error(t, Budget{NumTA: 0, UnitTimeHours: 2, MaxSlotHours: 8}.Validate())
	assert.Error(t, Budget{NumTA: 25, UnitTimeHours: 0, MaxSlotHours: 8}.Validate())
	assert.Error(t, Budget{NumTA: 25, UnitTimeHours: 2, MaxSlotHours: 0}.Validate())
}
