package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rhyrak/go-pick/pkg/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "gopick.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sessions() []model.Session {
	return []model.Session{
		{FullCode: "CSC101L1", CourseName: "Intro", Days: "MW", StartTime: "9:00 AM", EndTime: "10:15 AM"},
		{FullCode: "CSC101L1", CourseName: "Intro", Days: "F", StartTime: "9:00 AM", EndTime: "9:50 AM"},
		{FullCode: "MTH201L1", CourseName: "Calc", Days: "TR", StartTime: "1:00 PM", EndTime: "2:15 PM"},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.LoadSnapshot("75"); err != nil || ok {
		t.Fatalf("empty db: ok=%v err=%v", ok, err)
	}
	if err := db.SaveSnapshot("75", sessions()); err != nil {
		t.Fatal(err)
	}
	got, ok, err := db.LoadSnapshot("75")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, sessions()) {
		t.Fatalf("snapshot = %+v", got)
	}

	if err := db.SaveSnapshot("75", nil); err != nil {
		t.Fatal(err)
	}
	got, ok, err = db.LoadSnapshot("75")
	if err != nil || !ok || len(got) != 0 {
		t.Fatalf("emptied snapshot: %v %v %v", got, ok, err)
	}
}

func TestCheckTimingChanges(t *testing.T) {
	db := openTestDB(t)

	changes, err := db.CheckTimingChanges("75", sessions())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("first run reported %v", changes)
	}

	updated := sessions()
	updated[1].StartTime = "10:00 AM"
	updated = append(updated, model.Session{FullCode: "MTH201L1", Days: "F", StartTime: "1:00 PM", EndTime: "1:50 PM"})

	changes, err = db.CheckTimingChanges("75", updated)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Course CSC101L1 session 2 changed: new 10:00 AM-9:50 AM, was 9:00 AM-9:50 AM",
		"Course MTH201L1 session 2 is new: 1:00 PM-1:50 PM",
	}
	var got []string
	for _, c := range changes {
		got = append(got, c.String())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}

	changes, err = db.CheckTimingChanges("75", updated)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("unchanged table reported %v", changes)
	}

	other, err := db.CheckTimingChanges("76", updated)
	if err != nil || len(other) != 0 {
		t.Fatalf("terms are not independent: %v %v", other, err)
	}
}

func TestDiffSessionsBlankTime(t *testing.T) {
	previous := []model.Session{
		{FullCode: "CSC101L1", Days: "M", StartTime: "9:00 AM", EndTime: "10:15 AM"},
		{FullCode: "CSC101L1", Days: "W", StartTime: "11:00 AM", EndTime: "12:15 PM"},
	}
	current := []model.Session{
		{FullCode: "CSC101L1", Days: "M", StartTime: "", EndTime: "10:15 AM"},
		{FullCode: "CSC101L1", Days: "W", StartTime: "11:00 AM", EndTime: "12:15 PM"},
	}

	var got []string
	for _, c := range DiffSessions(previous, current) {
		got = append(got, c.String())
	}
	want := []string{"Course CSC101L1 session 1 changed: new -10:15 AM, was 9:00 AM-10:15 AM"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}
}
