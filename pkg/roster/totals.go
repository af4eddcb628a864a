package roster

import "tableflip.dev/senryoku/pkg/fleet"

// Totals derives per-category point totals plus the grand total for a
// user. It is a pure function of the user's ownership set, point maps,
// and the classification index: safe to recompute on every read and
// deterministic regardless of map iteration order.
//
// Each distinct owned series is counted once no matter how many of its
// items are owned; series in module categories are excluded by policy;
// unset points count as 0; the grand total sums every category except
// its own slot.
func (s *State) Totals(user string, ix *fleet.Index) map[fleet.Category]int {
	totals := make(map[fleet.Category]int, len(fleet.CategoryOrder()))
	for _, c := range fleet.CategoryOrder() {
		totals[c] = 0
	}

	series := make(map[string]struct{})
	for _, it := range s.Owned(user) {
		if sn := ix.SeriesFor(it.Name); sn != "" {
			series[sn] = struct{}{}
		}
	}

	for sn := range series {
		c, ok := ix.CategoryOfSeries(sn)
		if !ok || c.IsModule() {
			continue
		}
		totals[c] += s.SeriesPoint(user, sn).Value()
	}

	for _, c := range fleet.UnusedCategories() {
		totals[c] += s.UnusedPoint(user, c).Value()
	}

	grand := 0
	for _, c := range fleet.CategoryOrder() {
		if c == fleet.Overall {
			continue
		}
		grand += totals[c]
	}
	totals[fleet.Overall] = grand

	return totals
}
