package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeastLoaded_PicksMinimumLoad(t *testing.T) {
	ll := &LeastLoaded{}
	snapshots := []RoutingSnapshot{
		{Index: 1, QueueLength: 2, InService: 1},
		{Index: 2, QueueLength: 0, InService: 1},
		{Index: 3, QueueLength: 1, InService: 1},
	}

	decision := ll.Route(snapshots)

	assert.Equal(t, 2, decision.Target)
	assert.Contains(t, decision.Reason, "load=1")
}

func TestLeastLoaded_TiesGoToLowestIndex(t *testing.T) {
	ll := &LeastLoaded{}
	snapshots := []RoutingSnapshot{
		{Index: 1, InService: 1},
		{Index: 2},
		{Index: 3},
	}

	assert.Equal(t, 2, ll.Route(snapshots).Target)
}

func TestLeastLoaded_EmptySnapshots_Panics(t *testing.T) {
	assert.Panics(t, func() { (&LeastLoaded{}).Route(nil) })
}
