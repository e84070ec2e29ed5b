package calendar

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/rhyrak/go-pick/pkg/model"
	"github.com/tj/go-naturaldate"
)

const productID = "-//rhyrak//go-pick//EN"

// Options controls how a weekly schedule is laid onto real dates.
type Options struct {
	TermStart time.Time // first meeting is on or after this date
	Weeks     int       // occurrences of each meeting, default 15
	Location  *time.Location
	Now       time.Time // DTSTAMP, default time.Now()
}

// ParseTermStart accepts an ISO date ("2026-01-12") or a natural
// expression such as "next monday", resolved forward from ref.
func ParseTermStart(text string, ref time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ref, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", text, ref.Location()); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(text, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing term start %q: %w", text, err)
	}
	return t, nil
}

// Encode writes schedule as an iCalendar stream with one weekly recurring
// event per timeslot. Slots that end at or before their start are skipped
// and counted in the returned number.
func Encode(w io.Writer, schedule model.Schedule, opts Options) (int, error) {
	if opts.Weeks <= 0 {
		opts.Weeks = 15
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.TermStart.IsZero() {
		opts.TermStart = opts.Now
	}
	term := opts.TermStart.In(opts.Location)
	term = time.Date(term.Year(), term.Month(), term.Day(), 0, 0, 0, 0, opts.Location)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	skipped := 0
	for _, sec := range schedule {
		for i, slot := range sec.Timeslots {
			if slot.End <= slot.Start {
				skipped++
				continue
			}
			day := firstWeekday(term, slot.Day)
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s-%d@go-pick", sec.SectionID, slot.Day, i))
			event.Props.SetDateTime(ical.PropDateTimeStamp, opts.Now.UTC())
			event.Props.SetDateTime(ical.PropDateTimeStart, day.Add(clockOffset(slot.Start)))
			event.Props.SetDateTime(ical.PropDateTimeEnd, day.Add(clockOffset(slot.End)))
			event.Props.SetText(ical.PropSummary, sec.Label())
			if slot.Room != "" {
				event.Props.SetText(ical.PropLocation, slot.Room)
			}
			rule := ical.NewProp(ical.PropRecurrenceRule)
			rule.Value = fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", opts.Weeks)
			event.Props.Set(rule)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return skipped, fmt.Errorf("encoding calendar: %w", err)
	}
	return skipped, nil
}

// firstWeekday returns the first date on or after start that falls on d.
func firstWeekday(start time.Time, d model.Day) time.Time {
	want := time.Weekday(d.Index() + 1)
	diff := (int(want) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, diff)
}

func clockOffset(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}
