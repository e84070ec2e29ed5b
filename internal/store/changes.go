package store

import (
	"fmt"

	"github.com/rhyrak/go-pick/pkg/model"
)

type ChangeKind string

const (
	Changed ChangeKind = "changed"
	Added   ChangeKind = "new"
)

// Change is a session whose times differ from the previous snapshot, or
// which the snapshot did not have. Session is 1-based within its course.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	Course    string     `json:"course"`
	Session   int        `json:"session"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	PrevStart string     `json:"prev_start,omitempty"`
	PrevEnd   string     `json:"prev_end,omitempty"`
}

func (c Change) String() string {
	if c.Kind == Added {
		return fmt.Sprintf("Course %s session %d is new: %s-%s", c.Course, c.Session, c.Start, c.End)
	}
	return fmt.Sprintf("Course %s session %d changed: new %s-%s, was %s-%s",
		c.Course, c.Session, c.Start, c.End, c.PrevStart, c.PrevEnd)
}

// CheckTimingChanges compares current against the stored snapshot of term,
// session by session within each course, then stores current as the new
// snapshot. The first call for a term only stores and reports nothing.
func (db *DB) CheckTimingChanges(term string, current []model.Session) ([]Change, error) {
	previous, ok, err := db.LoadSnapshot(term)
	if err != nil {
		return nil, err
	}

	var changes []Change
	if ok {
		changes = DiffSessions(previous, current)
	}

	if err := db.SaveSnapshot(term, current); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	return changes, nil
}

// DiffSessions reports timing differences between two tables. Courses are
// visited in the order they appear in current.
func DiffSessions(previous, current []model.Session) []Change {
	_, prevGroups := groupByCourse(previous)
	codes, groups := groupByCourse(current)

	var changes []Change
	for _, code := range codes {
		back := prevGroups[code]
		for i, cur := range groups[code] {
			if i >= len(back) {
				changes = append(changes, Change{
					Kind: Added, Course: code, Session: i + 1,
					Start: cur.StartTime, End: cur.EndTime,
				})
				continue
			}
			if cur.StartTime != back[i].StartTime || cur.EndTime != back[i].EndTime {
				changes = append(changes, Change{
					Kind: Changed, Course: code, Session: i + 1,
					Start: cur.StartTime, End: cur.EndTime,
					PrevStart: back[i].StartTime, PrevEnd: back[i].EndTime,
				})
			}
		}
	}
	return changes
}

func groupByCourse(sessions []model.Session) ([]string, map[string][]model.Session) {
	var order []string
	groups := make(map[string][]model.Session)
	for _, s := range sessions {
		if _, seen := groups[s.FullCode]; !seen {
			order = append(order, s.FullCode)
		}
		groups[s.FullCode] = append(groups[s.FullCode], s)
	}
	return order, groups
}
