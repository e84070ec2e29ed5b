package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/pkg/model"
)

// RenderWeek draws the schedule as a weekday by half-hour grid, with the
// course code in every cell a meeting touches.
func RenderWeek(schedule model.Schedule) string {
	lo, hi := schedule.Bounds()
	first := math.Floor(lo*2) / 2

	styles := make(map[string]lipgloss.Style, len(schedule))
	for i, sec := range schedule {
		if _, ok := styles[sec.CourseCode]; !ok {
			styles[sec.CourseCode] = cellStyle.Foreground(palette[i%len(palette)]).Bold(true)
		}
	}

	var b strings.Builder
	header := []string{timeStyle.Render("")}
	for _, d := range model.Weekdays {
		header = append(header, headerStyle.Render(d.Name()[:3]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for t := first; t < hi; t += 0.5 {
		row := []string{timeStyle.Render(scheduler.FormatClock(t))}
		for _, d := range model.Weekdays {
			code := occupant(schedule, d, t, t+0.5)
			style := cellStyle
			if code != "" {
				style = styles[code]
			}
			row = append(row, style.Render(code))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func occupant(schedule model.Schedule, d model.Day, from, to float64) string {
	for _, sec := range schedule {
		for _, slot := range sec.Timeslots {
			if slot.Day == d && slot.Start < to && slot.End > from {
				return sec.CourseCode
			}
		}
	}
	return ""
}
