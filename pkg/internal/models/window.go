package models

import "time"

// RecentlyPublishedRange is how far back a question still counts as recently published.
const RecentlyPublishedRange = 24 * time.Hour

type WindowState struct {
	WasPublishedRecently bool `json:"was_published_recently"`
	IsPublished          bool `json:"is_published"`
	CanVote              bool `json:"can_vote"`
}

func (v Question) WasPublishedRecently(now time.Time) bool {
	return !v.PubDate.Before(now.Add(-RecentlyPublishedRange)) && !v.PubDate.After(now)
}

func (v Question) IsPublished(now time.Time) bool {
	return !now.Before(v.PubDate)
}

// CanVote reports whether now falls inside [PubDate, EndDate], both ends inclusive.
// A question whose end date is before its publish date never accepts votes.
func (v Question) CanVote(now time.Time) bool {
	return !now.Before(v.PubDate) && !now.After(v.EndDate)
}

func (v Question) Window(now time.Time) WindowState {
	return WindowState{
		WasPublishedRecently: v.WasPublishedRecently(now),
		IsPublished:          v.IsPublished(now),
		CanVote:              v.CanVote(now),
	}
}
