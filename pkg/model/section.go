package model

import "strings"

// Timeslot is one weekly meeting of a section. Start and End are hours
// since midnight; unparsable times are 0 so Start <= End is not guaranteed.
type Timeslot struct {
	Day      Day     `json:"day"`
	RawStart string  `json:"raw_start"`
	RawEnd   string  `json:"raw_end"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Room     string  `json:"room,omitempty"`
}

// Overlaps reports whether both slots fall on the same day and their
// intervals intersect. Touching endpoints do not overlap.
func (t Timeslot) Overlaps(o Timeslot) bool {
	return t.Day == o.Day && t.End > o.Start && o.End > t.Start
}

// Section is one lecture group of a course with its weekly meetings.
type Section struct {
	CourseCode string     `json:"course_code"`
	SectionID  string     `json:"section_id"`
	Timeslots  []Timeslot `json:"timeslots"`
}

// NewSection copies slots so the section cannot be changed through the
// caller's slice.
func NewSection(courseCode, sectionID string, slots []Timeslot) Section {
	return Section{
		CourseCode: courseCode,
		SectionID:  sectionID,
		Timeslots:  append([]Timeslot(nil), slots...),
	}
}

// ConflictsWith checks every pair of timeslots for an overlap.
func (s Section) ConflictsWith(other Section) bool {
	for _, a := range s.Timeslots {
		for _, b := range other.Timeslots {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Label is the "COURSE:SECTION" form used in listings.
func (s Section) Label() string {
	return s.CourseCode + ":" + s.SectionID
}

// Schedule holds exactly one section per selected course, in selection order.
type Schedule []Section

// Timeslots flattens the meetings of all sections.
func (s Schedule) Timeslots() []Timeslot {
	var all []Timeslot
	for _, sec := range s {
		all = append(all, sec.Timeslots...)
	}
	return all
}

// Lectures lists the section labels joined by commas.
func (s Schedule) Lectures() string {
	labels := make([]string, len(s))
	for i, sec := range s {
		labels[i] = sec.Label()
	}
	return strings.Join(labels, ", ")
}

// Bounds returns the earliest start and latest end of the schedule, or
// 8..18 when it has no meetings at all.
func (s Schedule) Bounds() (float64, float64) {
	slots := s.Timeslots()
	if len(slots) == 0 {
		return 8, 18
	}
	lo, hi := slots[0].Start, slots[0].End
	for _, t := range slots[1:] {
		lo = min(lo, t.Start)
		hi = max(hi, t.End)
	}
	return lo, hi
}

// ScheduleCSVRow is one exported meeting of a schedule.
type ScheduleCSVRow struct {
	CourseCode string `csv:"course_code"`
	Section    string `csv:"section"`
	Day        string `csv:"day"`
	StartTime  string `csv:"start_time"`
	EndTime    string `csv:"end_time"`
	Room       string `csv:"room"`
}
