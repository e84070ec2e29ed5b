package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layouts accepted for clock times, tried in order. Input is upper-cased
// before matching so "am"/"pm" work too.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04:05PM",
	"3 PM",
	"3PM",
	"15:04",
	"15:04:05",
	"15.04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseClock converts a clock time such as "11:00 AM" or "14:30" to hours
// since midnight, with minutes as the fraction.
func ParseClock(text string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.NewReplacer("A.M.", "AM", "P.M.", "PM").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("empty clock time")
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return float64(t.Hour()) + float64(t.Minute())/60.0, nil
		}
	}
	return 0, fmt.Errorf("unrecognized clock time %q", text)
}

// ParseTime is the fail-soft form of ParseClock: anything unparsable is
// midnight (0.0).
func ParseTime(text string) float64 {
	h, err := ParseClock(text)
	if err != nil {
		return 0.0
	}
	return h
}

// FormatClock renders hours since midnight as "HH:MM".
func FormatClock(hours float64) string {
	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
