package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rhyrak/go-pick/pkg/model"
)

var ErrUnknownPreference = errors.New("unknown preference")

// Preference flag names as used on the command line and in requests.
const (
	PrefNoBefore        = "no_before"
	PrefNoAfter         = "no_after"
	PrefAvoidFriday     = "avoid_friday"
	PrefAvoidBackToBack = "avoid_back_to_back"
	PrefMinimizeDays    = "minimize_days"
)

// PreferenceNames lists every supported flag.
var PreferenceNames = []string{PrefNoBefore, PrefNoAfter, PrefAvoidFriday, PrefAvoidBackToBack, PrefMinimizeDays}

// ParsePreferences enables the named criteria. Cutoffs are clock times and
// only parsed when the matching flag is set; an empty cutoff keeps the
// default.
func ParsePreferences(names []string, beforeCutoff, afterCutoff string) (model.Preferences, error) {
	prefs := model.DefaultPreferences()
	for _, name := range names {
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
		case "":
		case PrefNoBefore:
			prefs.NoBefore = true
		case PrefNoAfter:
			prefs.NoAfter = true
		case PrefAvoidFriday:
			prefs.AvoidFriday = true
		case PrefAvoidBackToBack:
			prefs.AvoidBackToBack = true
		case PrefMinimizeDays:
			prefs.MinimizeDays = true
		default:
			return prefs, fmt.Errorf("%w: %q", ErrUnknownPreference, name)
		}
	}

	if prefs.NoBefore && beforeCutoff != "" {
		h, err := ParseClock(beforeCutoff)
		if err != nil {
			return prefs, fmt.Errorf("%w: before cutoff: %v", model.ErrInvalidPreferences, err)
		}
		prefs.BeforeCutoff = h
	}
	if prefs.NoAfter && afterCutoff != "" {
		h, err := ParseClock(afterCutoff)
		if err != nil {
			return prefs, fmt.Errorf("%w: after cutoff: %v", model.ErrInvalidPreferences, err)
		}
		prefs.AfterCutoff = h
	}
	return prefs, prefs.Validate()
}
