package scheduler

import "github.com/rhyrak/go-pick/pkg/model"

// Status tells an empty result apart from one that was never requested.
type Status int

const (
	NotGenerated Status = iota
	NoSchedules
	Ready
)

func (s Status) String() string {
	switch s {
	case NoSchedules:
		return "no_schedules"
	case Ready:
		return "ready"
	}
	return "not_generated"
}

// State is the best-schedule set of one browsing session together with the
// current position in it. It is a value: Generate, Next and Prev return a
// new State and never modify the receiver, so the list and index are
// always replaced together.
type State struct {
	status    Status
	best      []model.Schedule
	score     int
	generated int
	index     int
}

// Best returns the schedules sharing the minimum score, in generation
// order, and that score.
func Best(schedules []model.Schedule, prefs model.Preferences) ([]model.Schedule, int) {
	if len(schedules) == 0 {
		return nil, 0
	}
	scores := make([]int, len(schedules))
	low := -1
	for i, s := range schedules {
		scores[i] = ScoreSchedule(s, prefs)
		if low < 0 || scores[i] < low {
			low = scores[i]
		}
	}
	var best []model.Schedule
	for i, s := range schedules {
		if scores[i] == low {
			best = append(best, s)
		}
	}
	return best, low
}

// NewState ranks already generated schedules.
func NewState(schedules []model.Schedule, prefs model.Preferences) State {
	best, score := Best(schedules, prefs)
	if len(best) == 0 {
		return State{status: NoSchedules}
	}
	return State{
		status:    Ready,
		best:      best,
		score:     score,
		generated: len(schedules),
	}
}

// Generate runs the generator over catalog and ranks the result.
func Generate(catalog Catalog, prefs model.Preferences) State {
	return NewState(GenerateSchedules(catalog), prefs)
}

func (s State) Status() Status { return s.status }

// Len is the number of tied best schedules.
func (s State) Len() int { return len(s.best) }

func (s State) Index() int { return s.index }

// Score is the penalty shared by every schedule in the set.
func (s State) Score() int { return s.score }

// Generated is the number of conflict-free schedules before ranking.
func (s State) Generated() int { return s.generated }

// Schedules returns the best set. Callers must not modify it.
func (s State) Schedules() []model.Schedule { return s.best }

// Current returns the schedule under the index.
func (s State) Current() (model.Schedule, bool) {
	if s.status != Ready {
		return nil, false
	}
	return s.best[s.index], true
}

// Next moves forward, stopping at the last schedule.
func (s State) Next() State {
	return s.move(1)
}

// Prev moves back, stopping at the first schedule.
func (s State) Prev() State {
	return s.move(-1)
}

func (s State) move(step int) State {
	if s.status != Ready {
		return s
	}
	s.index = min(max(s.index+step, 0), len(s.best)-1)
	return s
}
