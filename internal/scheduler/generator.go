package scheduler

import "github.com/rhyrak/go-pick/pkg/model"

// GenerateSchedules enumerates the cartesian product of the catalog, one
// section per course, and keeps the combinations without any conflicting
// pair. The last course varies fastest, so the output follows the catalog
// order. An empty catalog or a course without sections yields nothing.
func GenerateSchedules(catalog Catalog) []model.Schedule {
	if len(catalog) == 0 {
		return nil
	}
	for _, c := range catalog {
		if len(c.Sections) == 0 {
			return nil
		}
	}

	var valid []model.Schedule
	pick := make([]int, len(catalog))
	candidate := make(model.Schedule, len(catalog))
	for {
		for i, c := range catalog {
			candidate[i] = c.Sections[pick[i]]
		}
		if !hasConflict(candidate) {
			valid = append(valid, append(model.Schedule(nil), candidate...))
		}

		i := len(pick) - 1
		for ; i >= 0; i-- {
			pick[i]++
			if pick[i] < len(catalog[i].Sections) {
				break
			}
			pick[i] = 0
		}
		if i < 0 {
			return valid
		}
	}
}

func hasConflict(schedule model.Schedule) bool {
	for i := 0; i < len(schedule); i++ {
		for j := i + 1; j < len(schedule); j++ {
			if schedule[i].ConflictsWith(schedule[j]) {
				return true
			}
		}
	}
	return false
}
