package importer

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from the 1900 epoch, with the
// historical quirk that 1900 is treated as a leap year. Using
// 1899-12-30 as the base reproduces that off-by-one for serials from
// March 1900 on; earlier serials shift the base by one day.
const serialQuirkThreshold = 60

var serialBase = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FromSerial converts a spreadsheet serial day number to a date.
func FromSerial(serial int) time.Time {
	base := serialBase
	if serial < serialQuirkThreshold {
		base = base.AddDate(0, 0, 1)
	}
	return base.AddDate(0, 0, serial)
}

// ResolveColumnDate resolves the date of one duty column. Order is
// fixed: parse the header cell itself (serial number or DD.MM[.YYYY]
// text), then fall back to anchor plus column offset. ok is false when
// neither yields a date.
func ResolveColumnDate(headerCell string, anchor time.Time, columnOffset int, defaultYear int) (time.Time, bool) {
	if d, ok := ParseCellDate(headerCell, defaultYear); ok {
		return d, true
	}
	if !anchor.IsZero() {
		return anchor.AddDate(0, 0, columnOffset), true
	}
	return time.Time{}, false
}

// ParseCellDate parses a single cell as a date: DD.MM[.YYYY] text
// first, then a serial number. Text takes precedence so dotted headers
// like "3.2" are read as day and month, not as a fractional serial.
// Two-digit years are taken as 20xx; a missing year falls back to
// defaultYear.
func ParseCellDate(cell string, defaultYear int) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	if d, ok := parseTextDate(s, defaultYear); ok {
		return d, true
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(serial)
		if n < 1 || n > 200000 {
			return time.Time{}, false
		}
		return FromSerial(n), true
	}
	return time.Time{}, false
}

func parseTextDate(s string, defaultYear int) (time.Time, bool) {
	parts := strings.Split(strings.TrimSuffix(s, "."), ".")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	year := defaultYear
	if len(parts) == 3 {
		year, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
	}
	if year == 0 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
