package match

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusInReview  Status = "in_review"
	StatusFinished  Status = "finished"
)

// StatusProvider derives a match's operational status. It is injected so
// the boundary logic can come from an external scorekeeping signal without
// touching the consumers.
type StatusProvider interface {
	StatusOf(m *Match, now time.Time) Status
}

// MarkStatusProvider derives the status from the stored marks: finished
// once the scorekeepers validated the result, in review while a finish
// mark awaits validation, live between the start and finish marks,
// scheduled otherwise.
type MarkStatusProvider struct{}

func (MarkStatusProvider) StatusOf(m *Match, now time.Time) Status {
	switch {
	case m.FinishedAt != nil && m.Validated:
		return StatusFinished
	case m.FinishedAt != nil:
		return StatusInReview
	case m.StartedAt != nil:
		return StatusLive
	default:
		return StatusScheduled
	}
}

// GroupedMatches are the three buckets a scorekeeper works from.
type GroupedMatches struct {
	Live      []Match `json:"live"`
	InReview  []Match `json:"in_review"`
	Scheduled []Match `json:"scheduled"`
}

// GroupForScorekeeper buckets matches into the operationally relevant
// groups, preserving the incoming order inside each bucket. Finished
// matches are not the scorekeeper's concern and are dropped.
func GroupForScorekeeper(matches []Match, provider StatusProvider, now time.Time) GroupedMatches {
	grouped := GroupedMatches{
		Live:      []Match{},
		InReview:  []Match{},
		Scheduled: []Match{},
	}
	for _, m := range matches {
		switch provider.StatusOf(&m, now) {
		case StatusLive:
			grouped.Live = append(grouped.Live, m)
		case StatusInReview:
			grouped.InReview = append(grouped.InReview, m)
		case StatusScheduled:
			grouped.Scheduled = append(grouped.Scheduled, m)
		}
	}
	return grouped
}
