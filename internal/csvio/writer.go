package csvio

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/pkg/model"
)

// ExportSchedule formats the schedule into ScheduleCSVRow structs and
// writes them to the CSV file at path, replacing any existing file.
func ExportSchedule(schedule model.Schedule, path string) (string, error) {
	nice := formatSchedule(schedule)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&nice, out); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ExportScheduleString is ExportSchedule into a string.
func ExportScheduleString(schedule model.Schedule) (string, error) {
	nice := formatSchedule(schedule)
	return gocsv.MarshalString(&nice)
}

// PrintSchedule prints the meetings of a schedule grouped by day.
func PrintSchedule(w io.Writer, schedule model.Schedule) {
	nice := formatSchedule(schedule)
	var day string
	for _, c := range nice {
		if c.Day != day {
			day = c.Day
			d, _ := model.ParseDay(rune(day[0]))
			name := d.Name()
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(name))/2), name, strings.Repeat("-", int(0.5+(32-float32(len(name)))/2.0)))
		}
		fmt.Fprintf(w, "%s-%s   %-12s %-10s %s\n", c.StartTime, c.EndTime, c.CourseCode, c.Section, c.Room)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(nice))
}

// formatSchedule flattens a schedule into rows ordered by day, start time
// and course code.
func formatSchedule(schedule model.Schedule) []*model.ScheduleCSVRow {
	type meeting struct {
		sec  model.Section
		slot model.Timeslot
	}
	var meetings []meeting
	for _, sec := range schedule {
		for _, t := range sec.Timeslots {
			meetings = append(meetings, meeting{sec, t})
		}
	}
	slices.SortStableFunc(meetings, func(a, b meeting) int {
		if day := a.slot.Day.Index() - b.slot.Day.Index(); day != 0 {
			return day
		}
		if start := cmp.Compare(a.slot.Start, b.slot.Start); start != 0 {
			return start
		}
		return strings.Compare(a.sec.CourseCode, b.sec.CourseCode)
	})

	formatted := make([]*model.ScheduleCSVRow, 0, len(meetings))
	for _, m := range meetings {
		formatted = append(formatted, &model.ScheduleCSVRow{
			CourseCode: m.sec.CourseCode,
			Section:    m.sec.SectionID,
			Day:        m.slot.Day.String(),
			StartTime:  scheduler.FormatClock(m.slot.Start),
			EndTime:    scheduler.FormatClock(m.slot.End),
			Room:       m.slot.Room,
		})
	}
	return formatted
}
