package brain

// Stats is a point-in-time snapshot of transition store metrics, computed on
// demand from the live store with no caching.
type Stats struct {
	// TotalStates is the number of distinct states in the store.
	TotalStates int
	// TotalTransitions is the sum of prev and next list lengths across all
	// states.
	TotalTransitions int
	// AvgTransitionsPerState is TotalTransitions / TotalStates, or 0 for an
	// empty store. A rough measure of how varied generated sentences can be.
	AvgTransitionsPerState float64
	// TotalWords is the number of distinct words observed across all states.
	TotalWords int
}

// Stats computes a statistics snapshot for the brain. The store is read but
// never modified.
func (b *Brain) Stats() Stats {
	s := Stats{TotalStates: len(b.states)}

	for _, node := range b.states {
		s.TotalTransitions += len(node.tr.Prev) + len(node.tr.Next)
	}
	if s.TotalStates > 0 {
		s.AvgTransitionsPerState = float64(s.TotalTransitions) / float64(s.TotalStates)
	}
	s.TotalWords = len(b.byWord)

	return s
}
