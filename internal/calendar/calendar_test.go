package calendar

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/rhyrak/go-pick/pkg/model"
)

func TestEncode(t *testing.T) {
	schedule := model.Schedule{
		model.NewSection("CSC101", "CSC101L1", []model.Timeslot{
			{Day: model.Monday, Start: 9, End: 10.25, Room: "R101"},
			{Day: model.Wednesday, Start: 9, End: 10.25, Room: "R101"},
		}),
		model.NewSection("MTH201", "MTH201L2", []model.Timeslot{
			{Day: model.Friday, Start: 13 + 5.0/60, End: 13 + 55.0/60},
			{Day: model.Tuesday, Start: 0, End: 0},
		}),
	}
	opts := Options{
		TermStart: time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC), // a Monday
		Weeks:     14,
		Now:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	skipped, err := Encode(&buf, schedule, opts)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}

	cal, err := ical.NewDecoder(&buf).Decode()
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	wantStart := []string{"20260112T090000Z", "20260114T090000Z", "20260116T130500Z"}
	for i, ev := range events {
		if got := ev.Props.Get(ical.PropDateTimeStart).Value; got != wantStart[i] {
			t.Errorf("event %d DTSTART = %s, want %s", i, got, wantStart[i])
		}
		if got := ev.Props.Get(ical.PropRecurrenceRule).Value; got != "FREQ=WEEKLY;COUNT=14" {
			t.Errorf("event %d RRULE = %s", i, got)
		}
	}
	if got := events[0].Props.Get(ical.PropDateTimeEnd).Value; got != "20260112T101500Z" {
		t.Errorf("DTEND = %s", got)
	}
	summary, _ := events[2].Props.Text(ical.PropSummary)
	if summary != "MTH201:MTH201L2" {
		t.Errorf("SUMMARY = %q", summary)
	}
	if loc, _ := events[0].Props.Text(ical.PropLocation); loc != "R101" {
		t.Errorf("LOCATION = %q", loc)
	}
}

func TestParseTermStart(t *testing.T) {
	ref := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)

	got, err := ParseTermStart("2026-01-12", ref)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}

	if got, err := ParseTermStart("", ref); err != nil || !got.Equal(ref) {
		t.Fatalf("empty text: %v %v", got, err)
	}

	got, err = ParseTermStart("tomorrow", ref)
	if err != nil {
		t.Fatal(err)
	}
	if !got.After(ref) || !strings.HasPrefix(got.Format("2006-01-02"), "2026-01-08") {
		t.Fatalf("tomorrow = %v", got)
	}
}
