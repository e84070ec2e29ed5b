package model

import "fmt"

// Day is a single weekday letter as printed by the registration portal.
type Day byte

const (
	Monday    Day = 'M'
	Tuesday   Day = 'T'
	Wednesday Day = 'W'
	Thursday  Day = 'R'
	Friday    Day = 'F'
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseDay maps a day letter to a Day. Lowercase letters are accepted.
func ParseDay(r rune) (Day, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	for _, d := range Weekdays {
		if rune(d) == r {
			return d, true
		}
	}
	return 0, false
}

// Index returns the position of d in Weekdays, or -1.
func (d Day) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Day) String() string {
	return string(rune(d))
}

// Name returns the full English name of the day.
func (d Day) Name() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	}
	return d.String()
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte{byte(d)}, nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("invalid day %q", b)
	}
	v, ok := ParseDay(rune(b[0]))
	if !ok {
		return fmt.Errorf("invalid day %q", b)
	}
	*d = v
	return nil
}
