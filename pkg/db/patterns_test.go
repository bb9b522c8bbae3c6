package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagedorn/wachplan/pkg/core/pattern"
)

func TestPatterns_RoundTripNormalized(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	// A short pattern is padded to the full cycle on write.
	require.NoError(t, d.UpsertPattern(ctx, PatternDept, pattern.Sequence{
		Start:   start,
		Symbols: []string{"1", "2", "3"},
	}))

	seqs, err := d.Patterns(ctx, PatternDept)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.True(t, seqs[0].Start.Equal(start))
	assert.Len(t, seqs[0].Symbols, pattern.Length)
	assert.Equal(t, "1", seqs[0].Symbols[0])
	assert.Equal(t, "", seqs[0].Symbols[3])

	// Re-storing what was read yields the identical sequence.
	require.NoError(t, d.UpsertPattern(ctx, PatternDept, seqs[0]))
	again, err := d.Patterns(ctx, PatternDept)
	require.NoError(t, err)
	assert.Equal(t, seqs, again)
}

func TestReplacePatterns_SwapsWholeSet(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, d.UpsertPattern(ctx, PatternITW, pattern.Sequence{
		Start:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Symbols: []string{"IW"},
	}))

	replacement := []pattern.Sequence{
		{Start: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), Symbols: []string{"", "IW"}},
		{Start: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), Symbols: []string{"IW", ""}},
	}
	require.NoError(t, d.ReplacePatterns(ctx, PatternITW, replacement))

	seqs, err := d.Patterns(ctx, PatternITW)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, 2026, seqs[0].Start.Year())

	// The two calendars are independent.
	deptSeqs, err := d.Patterns(ctx, PatternDept)
	require.NoError(t, err)
	assert.Empty(t, deptSeqs)
}
