package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/cmd/cli/commands"
	"github.com/mhagedorn/wachplan/internal/config"
	"github.com/mhagedorn/wachplan/pkg/core/services"
	"github.com/mhagedorn/wachplan/pkg/db"
	"github.com/mhagedorn/wachplan/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wachplan",
		Short: "Wachplan CLI - Manage duty rosters, slots and quotas",
		Long:  `A CLI tool for managing emergency-service duty rosters: roster imports, vehicle slot assignments, pattern calendars and fairness quotas.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment suffix for oauthClient.<env>.json (optional)")

	rootCmd.AddCommand(commands.ImportRosterCmd(app))
	rootCmd.AddCommand(commands.PreviewRosterCmd(app))
	rootCmd.AddCommand(commands.QuotaCmd(app))
	rootCmd.AddCommand(commands.AssignSlotCmd(app))
	rootCmd.AddCommand(commands.ClearSlotsCmd(app))
	rootCmd.AddCommand(commands.ClearRosterCmd(app))
	rootCmd.AddCommand(commands.SetPatternCmd(app))
	rootCmd.AddCommand(commands.ShowPatternCmd(app))
	rootCmd.AddCommand(commands.HolidaysCmd(app))
	rootCmd.AddCommand(commands.ListStaffCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the embedded database
func initApp() error {
	app.Ctx = context.Background()
	app.Env = env

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Opening database", zap.String("path", app.Cfg.DatabasePath))
	app.Database, err = db.Open(app.Cfg.DatabasePath, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := services.EnsureDefaults(app.Ctx, app.Database, app.Cfg, app.Logger); err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	return nil
}
