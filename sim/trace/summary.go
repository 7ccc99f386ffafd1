package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	UniqueTargets      int
	MeanChosenLoad     float64
	MaxChosenLoad      int
	TargetDistribution map[int]int // station index → count of agents routed
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Routings)
	if len(st.Routings) > 0 {
		totalLoad := 0
		for _, r := range st.Routings {
			summary.TargetDistribution[r.ChosenStation]++
			load := r.ChosenLoad()
			if load < 0 {
				continue
			}
			totalLoad += load
			if load > summary.MaxChosenLoad {
				summary.MaxChosenLoad = load
			}
		}
		summary.MeanChosenLoad = float64(totalLoad) / float64(len(st.Routings))
	}

	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
