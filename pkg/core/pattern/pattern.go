// Package pattern resolves the repeating 21-day duty patterns that
// classify each calendar day. Two independent calendars use it: the
// department rotation (symbols 1/2/3) and the ITW duty days (symbol IW
// or blank). Patterns are versioned: each sequence carries an
// effective-start date and the latest sequence not in the future wins.
package pattern

import (
	"strings"
	"time"
)

// Length is the fixed cycle length. Stored patterns are always
// normalized to exactly this many symbols.
const Length = 21

// Sequence is one versioned pattern: its effective-start date and the
// 21 symbols of the cycle.
type Sequence struct {
	Start   time.Time
	Symbols []string
}

// DepartmentAlphabet are the symbols a department pattern may contain.
var DepartmentAlphabet = []string{"1", "2", "3"}

// ITWAlphabet are the symbols an ITW pattern may contain besides blank.
var ITWAlphabet = []string{"IW"}

// Normalize returns a copy of symbols with exactly Length elements,
// padding with empty strings and truncating silently.
func Normalize(symbols []string) []string {
	out := make([]string, Length)
	copy(out, symbols)
	return out
}

// NormalizeSymbol maps anything outside the alphabet to the empty
// string. The blank symbol is always allowed.
func NormalizeSymbol(symbol string, alphabet []string) string {
	for _, a := range alphabet {
		if symbol == a {
			return symbol
		}
	}
	return ""
}

// active selects the latest sequence whose start is not after date.
// Future-dated sequences never influence earlier days.
func active(date time.Time, seqs []Sequence) (Sequence, bool) {
	var best Sequence
	found := false
	for _, s := range seqs {
		if s.Start.After(date) {
			continue
		}
		if !found || s.Start.After(best.Start) {
			best = s
			found = true
		}
	}
	return best, found
}

// DayIndex returns the position of date within the active sequence's
// cycle: whole days since the sequence start, modulo Length. ok is
// false when no sequence starts on or before date; callers must treat
// that as unclassified, not as a default category.
func DayIndex(date time.Time, seqs []Sequence) (int, bool) {
	seq, ok := active(date, seqs)
	if !ok {
		return 0, false
	}
	diff := int(truncateDay(date).Sub(truncateDay(seq.Start)).Hours() / 24)
	return diff % Length, true
}

// SymbolFor returns the pattern symbol for date, normalized against the
// alphabet. ok is false when the date is unclassified.
func SymbolFor(date time.Time, seqs []Sequence, alphabet []string) (string, bool) {
	seq, ok := active(date, seqs)
	if !ok {
		return "", false
	}
	idx, _ := DayIndex(date, []Sequence{seq})
	symbols := Normalize(seq.Symbols)
	return NormalizeSymbol(strings.TrimSpace(symbols[idx]), alphabet), true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
