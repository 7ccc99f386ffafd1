package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.UniqueTargets != 0 {
		t.Errorf("expected 0 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.MeanChosenLoad != 0 || summary.MaxChosenLoad != 0 {
		t.Error("expected 0 load values")
	}
	if len(summary.TargetDistribution) != 0 {
		t.Error("expected empty target distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("Summarize(nil) returned nil")
	}
	if summary.TotalDecisions != 0 || summary.TargetDistribution == nil {
		t.Errorf("unexpected summary for nil trace: %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN routing records over two stations with known chosen loads
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordRouting(RoutingRecord{AgentID: 0, ChosenStation: 1, Loads: []int{0, 0}})
	st.RecordRouting(RoutingRecord{AgentID: 1, ChosenStation: 2, Loads: []int{1, 0}})
	st.RecordRouting(RoutingRecord{AgentID: 2, ChosenStation: 1, Loads: []int{1, 1}})
	st.RecordRouting(RoutingRecord{AgentID: 3, ChosenStation: 1, Loads: []int{2, 3}})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and load statistics match
	if summary.TotalDecisions != 4 {
		t.Errorf("expected 4 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.UniqueTargets != 2 {
		t.Errorf("expected 2 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.TargetDistribution[1] != 3 || summary.TargetDistribution[2] != 1 {
		t.Errorf("unexpected distribution %v", summary.TargetDistribution)
	}
	// chosen loads: 0, 0, 1, 2
	if summary.MaxChosenLoad != 2 {
		t.Errorf("expected max chosen load 2, got %d", summary.MaxChosenLoad)
	}
	if want := 0.75; summary.MeanChosenLoad < want-1e-9 || summary.MeanChosenLoad > want+1e-9 {
		t.Errorf("expected mean chosen load %.2f, got %.4f", want, summary.MeanChosenLoad)
	}
}
