package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deptSeq(start time.Time) Sequence {
	symbols := make([]string, Length)
	for i := range symbols {
		symbols[i] = []string{"1", "2", "3"}[i%3]
	}
	return Sequence{Start: start, Symbols: symbols}
}

func TestDayIndex_NoSequence(t *testing.T) {
	_, ok := DayIndex(date(2026, time.March, 1), nil)
	assert.False(t, ok)

	// A sequence starting after the queried date does not qualify.
	_, ok = DayIndex(date(2026, time.March, 1), []Sequence{deptSeq(date(2026, time.April, 1))})
	assert.False(t, ok)
}

func TestDayIndex_Modulo(t *testing.T) {
	seqs := []Sequence{deptSeq(date(2026, time.January, 1))}

	idx, ok := DayIndex(date(2026, time.January, 1), seqs)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, _ = DayIndex(date(2026, time.January, 22), seqs)
	assert.Equal(t, 0, idx)

	idx, _ = DayIndex(date(2026, time.January, 13), seqs)
	assert.Equal(t, 12, idx)
}

func TestDayIndex_LatestSequenceWins(t *testing.T) {
	older := deptSeq(date(2025, time.January, 1))
	newer := deptSeq(date(2026, time.February, 10))

	idx, ok := DayIndex(date(2026, time.February, 12), []Sequence{older, newer})
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestDayIndex_FutureSequenceDoesNotChangePast(t *testing.T) {
	seqs := []Sequence{deptSeq(date(2026, time.January, 1))}
	query := date(2026, time.March, 5)

	before, ok := DayIndex(query, seqs)
	require.True(t, ok)

	withFuture := append(seqs, deptSeq(date(2026, time.June, 1)))
	after, ok := DayIndex(query, withFuture)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestNormalize(t *testing.T) {
	short := Normalize([]string{"1", "2"})
	require.Len(t, short, Length)
	assert.Equal(t, "1", short[0])
	assert.Equal(t, "", short[2])
	assert.Equal(t, "", short[Length-1])

	long := make([]string, Length+5)
	for i := range long {
		long[i] = "IW"
	}
	assert.Len(t, Normalize(long), Length)
}

func TestNormalize_RoundTrip(t *testing.T) {
	symbols := Normalize([]string{"1", "", "3", "2"})
	assert.Equal(t, symbols, Normalize(symbols))
}

func TestSymbolFor_AlphabetNormalization(t *testing.T) {
	seq := Sequence{
		Start:   date(2026, time.January, 1),
		Symbols: []string{"1", "X", "IW"},
	}

	sym, ok := SymbolFor(date(2026, time.January, 1), []Sequence{seq}, DepartmentAlphabet)
	require.True(t, ok)
	assert.Equal(t, "1", sym)

	// Out-of-alphabet symbols collapse to blank.
	sym, _ = SymbolFor(date(2026, time.January, 2), []Sequence{seq}, DepartmentAlphabet)
	assert.Equal(t, "", sym)

	// "IW" is valid for the ITW calendar but not the department one.
	sym, _ = SymbolFor(date(2026, time.January, 3), []Sequence{seq}, ITWAlphabet)
	assert.Equal(t, "IW", sym)
	sym, _ = SymbolFor(date(2026, time.January, 3), []Sequence{seq}, DepartmentAlphabet)
	assert.Equal(t, "", sym)
}

func TestSymbolFor_PaddedTail(t *testing.T) {
	// A stored two-symbol pattern reads blank past its real content.
	seq := Sequence{Start: date(2026, time.January, 1), Symbols: []string{"IW", "IW"}}
	sym, ok := SymbolFor(date(2026, time.January, 10), []Sequence{seq}, ITWAlphabet)
	require.True(t, ok)
	assert.Equal(t, "", sym)
}
