// Package urgency derives reporting labels and queue ordering for questions.
package urgency

import (
	"sort"
	"time"

	"dataroom/internal/model"
)

// Label is a derived urgency classification. None means no label applies.
type Label string

const (
	None    Label = ""
	Overdue Label = "Overdue"
	DueSoon Label = "Due Soon"
	Aging   Label = "Aging"
)

const (
	highOverdueAfter = 4 * time.Hour
	mediumDueAfter   = 24 * time.Hour
	agingAfter       = 72 * time.Hour
)

// PriorityRank maps a priority to its sort weight; unknown priorities rank 0.
func PriorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	}
	return 0
}

// Classify labels q by its age at now. Rules are checked in order and the
// first match wins, so an old high priority question is Overdue, not Aging.
func Classify(q model.Question, now time.Time) Label {
	elapsed := now.Sub(q.AskedAt)
	switch {
	case q.Priority == model.PriorityHigh && elapsed > highOverdueAfter:
		return Overdue
	case q.Priority == model.PriorityMedium && elapsed > mediumDueAfter:
		return DueSoon
	case elapsed > agingAfter:
		return Aging
	}
	return None
}

// SortQueue orders questions for a responder: priority descending, then newest first.
// The sort is stable and happens in place.
func SortQueue(qs []model.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		ri, rj := PriorityRank(qs[i].Priority), PriorityRank(qs[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return qs[i].AskedAt.After(qs[j].AskedAt)
	})
}
