// Package shiftcode maps duty-code strings to evaluation categories.
// The mapping is configuration, not code: every ShiftType carries an
// "auswertung_<code>" settings entry naming its category, and every
// code without one counts as off duty.
package shiftcode

import "strings"

// Category is the evaluation category of a duty code.
type Category string

const (
	CategoryOff   Category = "off"
	CategoryDay   Category = "day"
	CategoryNight Category = "night"
	Category24h   Category = "24h"
	CategoryITW   Category = "itw"

	// CategoryAny is only valid as a desired category in IsEligible.
	CategoryAny Category = "any"
)

// SettingPrefix is the settings-key prefix under which per-code
// categories are stored ("auswertung_<code>").
const SettingPrefix = "auswertung_"

// ColorSettingPrefix is the settings-key prefix for per-code display
// colors.
const ColorSettingPrefix = "color_"

// Classifier resolves duty codes to categories.
type Classifier struct {
	byCode map[string]Category
}

// New builds a classifier from an explicit code→category map.
func New(byCode map[string]Category) *Classifier {
	m := make(map[string]Category, len(byCode))
	for code, cat := range byCode {
		m[code] = cat
	}
	return &Classifier{byCode: m}
}

// FromSettings builds a classifier from a raw settings map, picking up
// every "auswertung_<code>" key. Unknown category values are dropped so
// the affected code falls back to off.
func FromSettings(settings map[string]string) *Classifier {
	byCode := make(map[string]Category)
	for key, value := range settings {
		code, found := strings.CutPrefix(key, SettingPrefix)
		if !found || code == "" {
			continue
		}
		cat := Category(value)
		switch cat {
		case CategoryOff, CategoryDay, CategoryNight, Category24h, CategoryITW:
			byCode[code] = cat
		}
	}
	return New(byCode)
}

// Classify returns the category configured for code, or CategoryOff for
// unknown or empty codes.
func (c *Classifier) Classify(code string) Category {
	if cat, ok := c.byCode[code]; ok {
		return cat
	}
	return CategoryOff
}

// IsEligible reports whether a person holding code on a date is a
// candidate for a slot requiring the desired category. A 24h code
// satisfies both day and night demand; 24h demand requires an exact
// 24h code; CategoryAny accepts everything.
func (c *Classifier) IsEligible(code string, desired Category) bool {
	if desired == CategoryAny {
		return true
	}
	actual := c.Classify(code)
	switch desired {
	case CategoryDay:
		return actual == CategoryDay || actual == Category24h
	case CategoryNight:
		return actual == CategoryNight || actual == Category24h
	default:
		return actual == desired
	}
}
