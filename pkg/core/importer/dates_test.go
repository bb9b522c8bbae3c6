package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSerial(t *testing.T) {
	assert.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), FromSerial(1))
	// The fictitious 1900 leap day: serial 59 is the real Feb 28.
	assert.Equal(t, time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC), FromSerial(59))
	assert.Equal(t, time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC), FromSerial(61))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), FromSerial(45292))
}

func TestParseCellDate_Serial(t *testing.T) {
	d, ok := ParseCellDate("45292", 2026)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), d)

	// Sheets can deliver serials with a fraction for datetimes.
	d, ok = ParseCellDate("45292.5", 2026)
	require.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	_, ok = ParseCellDate("0", 2026)
	assert.False(t, ok)
	_, ok = ParseCellDate("99999999", 2026)
	assert.False(t, ok)
}

func TestParseCellDate_Text(t *testing.T) {
	d, ok := ParseCellDate("24.12.2026", 0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseCellDate("05.03.26", 0)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())

	// Day and month only: the requested year fills in.
	d, ok = ParseCellDate("3.2.", 2026)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseCellDate(" 3.2 ", 2026)
	require.True(t, ok)
	assert.Equal(t, time.February, d.Month())

	// Dotted day.month must be read as text, never as a small serial.
	d, ok = ParseCellDate("01.03", 2026)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestParseCellDate_Invalid(t *testing.T) {
	for _, cell := range []string{"", "Meyer, Anna", "32.01.2026", "01.13.2026", "3.2.x"} {
		_, ok := ParseCellDate(cell, 2026)
		assert.False(t, ok, "expected %q to be rejected", cell)
	}

	// Day/month without any usable year.
	_, ok := ParseCellDate("3.2.", 0)
	assert.False(t, ok)
}

func TestResolveColumnDate_FallbackOrder(t *testing.T) {
	anchor := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Parseable header wins over the anchor.
	d, ok := ResolveColumnDate("15.03.2026", anchor, 5, 2026)
	require.True(t, ok)
	assert.Equal(t, 15, d.Day())

	// Unparseable header falls back to anchor plus offset.
	d, ok = ResolveColumnDate("KW 11", anchor, 5, 2026)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), d)

	// Nothing to fall back to.
	_, ok = ResolveColumnDate("KW 11", time.Time{}, 5, 2026)
	assert.False(t, ok)
}
