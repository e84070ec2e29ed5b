package scheduler

import (
	"fmt"

	"github.com/rhyrak/go-pick/pkg/model"
)

// Validate checks that schedule picks exactly one catalog section per
// course, in catalog order, and that no two picked sections conflict.
// Returns false and a report for invalid schedules.
func Validate(catalog Catalog, schedule model.Schedule) (bool, string) {
	var message string
	var valid bool = true
	var hasForeignSection bool = false
	var hasSectionCollision bool = false

	coverageOK := len(schedule) == len(catalog)
	if !coverageOK {
		valid = false
		message += fmt.Sprintf("- Schedule has %d sections for %d courses\n", len(schedule), len(catalog))
	}

	for i := 0; i < len(schedule) && i < len(catalog); i++ {
		if !containsSection(catalog[i].Sections, schedule[i]) {
			valid = false
			hasForeignSection = true
			message += fmt.Sprintf("- Section %s is not offered for %s\n", schedule[i].Label(), catalog[i].Code)
		}
	}

	for i := 0; i < len(schedule); i++ {
		for j := i + 1; j < len(schedule); j++ {
			if schedule[i].ConflictsWith(schedule[j]) {
				valid = false
				hasSectionCollision = true
				message += fmt.Sprintf("- %s overlaps %s\n", schedule[i].Label(), schedule[j].Label())
			}
		}
	}

	if hasSectionCollision {
		message = "[FAIL]: Section collision check.\n" + message
	} else {
		message = "[  OK]: Section collision check.\n" + message
	}
	if hasForeignSection {
		message = "[FAIL]: Offered section check.\n" + message
	} else {
		message = "[  OK]: Offered section check.\n" + message
	}
	if !coverageOK {
		message = "[FAIL]: One section per course check.\n" + message
	} else {
		message = "[  OK]: One section per course check.\n" + message
	}

	return valid, message
}

func containsSection(s []model.Section, e model.Section) bool {
	for _, a := range s {
		if a.CourseCode == e.CourseCode && a.SectionID == e.SectionID {
			return true
		}
	}
	return false
}
