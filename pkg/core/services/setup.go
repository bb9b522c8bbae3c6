package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/internal/config"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// SetupStore defines the settings operations needed for initial seeding.
type SetupStore interface {
	Setting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// EnsureDefaults copies station defaults from the config file into the
// settings table. Existing settings are never overwritten, so values
// changed at runtime survive restarts with an older config file.
func EnsureDefaults(ctx context.Context, store SetupStore, cfg *config.Config, logger *zap.Logger) error {
	defaults := map[string]string{
		db.SettingDepartment:       cfg.Department,
		db.SettingITW:              strconv.FormatBool(cfg.ITWEnabled),
		db.SettingRosterImportPath: cfg.RosterImportPath,
	}
	if cfg.Year > 0 {
		defaults[db.SettingYear] = strconv.Itoa(cfg.Year)
	}

	for key, value := range defaults {
		if value == "" {
			continue
		}
		_, found, err := store.Setting(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read setting %s: %w", key, err)
		}
		if found {
			continue
		}
		if err := store.SetSetting(ctx, key, value); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
		logger.Debug("Seeded default setting", zap.String("key", key), zap.String("value", value))
	}
	return nil
}
