package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/rhyrak/go-pick/pkg/model"
)

var (
	ErrNoCourses     = errors.New("pick at least one course")
	ErrUnknownCourse = errors.New("course not offered")
	ErrNoSections    = errors.New("course has no schedulable sections")
)

var baseCodePattern = regexp.MustCompile(`^([A-Za-z]+\d+)`)

// BaseCode strips the section suffix from a full course code, e.g.
// "CSC101L2" -> "CSC101". Codes that do not start with letters+digits are
// returned as is.
func BaseCode(fullCode string) string {
	if m := baseCodePattern.FindStringSubmatch(fullCode); m != nil {
		return m[1]
	}
	return fullCode
}

// Offering is a selectable course.
type Offering struct {
	BaseCode string `json:"base_code"`
	Name     string `json:"name"`
}

func (o Offering) Label() string {
	return o.BaseCode + " — " + o.Name
}

// Offerings lists distinct base codes in first-seen order. The name comes
// from the first row of the course.
func Offerings(sessions []model.Session) []Offering {
	var out []Offering
	seen := make(map[string]bool)
	for _, s := range sessions {
		code := BaseCode(s.FullCode)
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, Offering{BaseCode: code, Name: s.CourseName})
	}
	return out
}

// Course is one selected course with its candidate sections.
type Course struct {
	Code     string          `json:"code"`
	Sections []model.Section `json:"sections"`
}

// Catalog keeps the selected courses in selection order.
type Catalog []Course

// Warning flags a value that was replaced by a default while building
// sections.
type Warning struct {
	Section string
	Field   string
	Value   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: bad %s %q", w.Section, w.Field, w.Value)
}

// BuildCatalog groups the session rows of the selected base codes into
// sections. All rows sharing a full code form one section; every letter of
// a row's day string yields one timeslot. Sections are ordered by full code.
func BuildCatalog(sessions []model.Session, codes []string) (Catalog, []Warning, error) {
	if len(codes) == 0 {
		return nil, nil, ErrNoCourses
	}

	var catalog Catalog
	var warnings []Warning
	picked := make(map[string]bool)
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if picked[code] {
			continue
		}
		picked[code] = true

		rows := make(map[string][]model.Session)
		for _, s := range sessions {
			if BaseCode(s.FullCode) == code {
				rows[s.FullCode] = append(rows[s.FullCode], s)
			}
		}
		if len(rows) == 0 {
			return nil, warnings, fmt.Errorf("%w: %s", ErrUnknownCourse, code)
		}

		fullCodes := make([]string, 0, len(rows))
		for fc := range rows {
			fullCodes = append(fullCodes, fc)
		}
		slices.Sort(fullCodes)

		course := Course{Code: code}
		for _, fc := range fullCodes {
			slots, w := buildTimeslots(fc, rows[fc])
			warnings = append(warnings, w...)
			if len(slots) == 0 {
				continue
			}
			course.Sections = append(course.Sections, model.NewSection(code, fc, slots))
		}
		if len(course.Sections) == 0 {
			return nil, warnings, fmt.Errorf("%w: %s", ErrNoSections, code)
		}
		catalog = append(catalog, course)
	}
	return catalog, warnings, nil
}

func buildTimeslots(fullCode string, rows []model.Session) ([]model.Timeslot, []Warning) {
	var slots []model.Timeslot
	var warnings []Warning
	for _, r := range rows {
		start, err := ParseClock(r.StartTime)
		if err != nil {
			warnings = append(warnings, Warning{Section: fullCode, Field: "start time", Value: r.StartTime})
		}
		end, err := ParseClock(r.EndTime)
		if err != nil {
			warnings = append(warnings, Warning{Section: fullCode, Field: "end time", Value: r.EndTime})
		}
		for _, letter := range r.Days {
			if letter == ',' || letter == ' ' {
				continue
			}
			day, ok := model.ParseDay(letter)
			if !ok {
				warnings = append(warnings, Warning{Section: fullCode, Field: "day", Value: string(letter)})
				continue
			}
			slots = append(slots, model.Timeslot{
				Day:      day,
				RawStart: r.StartTime,
				RawEnd:   r.EndTime,
				Start:    start,
				End:      end,
				Room:     r.Room,
			})
		}
	}
	return slots, warnings
}
