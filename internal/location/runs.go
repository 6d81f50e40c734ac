package location

import "sort"

// runIndex derives the run list for one identity: one entry per distinct run
// id, start time taken from the earliest point, most recent start first.
// Equal start times keep the store's return order.
func runIndex(points []Point) []RunRef {
	starts := map[string]int64{}
	var order []string
	for _, p := range points {
		start, seen := starts[p.RunID]
		if !seen {
			order = append(order, p.RunID)
			starts[p.RunID] = p.TimestampMs
			continue
		}
		if p.TimestampMs < start {
			starts[p.RunID] = p.TimestampMs
		}
	}

	runs := make([]RunRef, 0, len(order))
	for _, id := range order {
		runs = append(runs, RunRef{RunID: id, StartTime: starts[id]})
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartTime > runs[j].StartTime
	})
	return runs
}
