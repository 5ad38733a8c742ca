package competition

import "sort"

// SortStandings orders standings rows descending by points. Ties keep the
// stored position order; rows sharing that too keep their incoming order
// (the sort is stable on purpose).
func SortStandings(rows []TeamCompetition) []TeamCompetition {
	sorted := make([]TeamCompetition, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}
