package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_InMemory(t *testing.T) {
	d, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	ctx := context.Background()

	// A write followed by a read must go through the same database even
	// though pool connections are handed out independently.
	require.NoError(t, d.SetSetting(ctx, SettingDepartment, "2"))

	got, ok, err := d.Setting(ctx, SettingDepartment)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", got)
}
