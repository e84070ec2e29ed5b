package model

import (
	"errors"
	"fmt"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

// Preferences selects which penalties apply when ranking schedules. Each
// enabled criterion adds one point per violating instance.
type Preferences struct {
	NoBefore        bool    `json:"no_before"`
	BeforeCutoff    float64 `json:"before_cutoff"`
	NoAfter         bool    `json:"no_after"`
	AfterCutoff     float64 `json:"after_cutoff"`
	AvoidFriday     bool    `json:"avoid_friday"`
	AvoidBackToBack bool    `json:"avoid_back_to_back"`
	MinimizeDays    bool    `json:"minimize_days"`
}

// DefaultPreferences has every criterion off and the form's default
// cutoffs of 11:00 and 17:00.
func DefaultPreferences() Preferences {
	return Preferences{BeforeCutoff: 11, AfterCutoff: 17}
}

// Validate rejects cutoffs outside a day.
func (p Preferences) Validate() error {
	if p.NoBefore && (p.BeforeCutoff < 0 || p.BeforeCutoff > 24) {
		return fmt.Errorf("%w: before cutoff %.2f out of range", ErrInvalidPreferences, p.BeforeCutoff)
	}
	if p.NoAfter && (p.AfterCutoff < 0 || p.AfterCutoff > 24) {
		return fmt.Errorf("%w: after cutoff %.2f out of range", ErrInvalidPreferences, p.AfterCutoff)
	}
	return nil
}
