package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/services"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// QuotaCmd creates the quota command
func QuotaCmd(app *AppContext) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show per-person fairness targets and driven shifts for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				value, found, err := app.Database.Setting(app.Ctx, db.SettingYear)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no year configured, pass --year")
				}
				year, err = strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid configured year %q: %w", value, err)
				}
			}

			report, err := services.QuotaReport(app.Ctx, app.Database, year, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n📊 Quota Report %d (department %s)\n\n", report.Year, report.Department)

			fmt.Printf("%-6s %10s %8s %8s %8s\n", "Month", "DutyDays", "RTW", "NEF", "Demand")
			for _, m := range report.Months {
				fmt.Printf("%-6s %10d %8d %8d %8d\n",
					m.Month.String()[:3], m.DeptShiftDays, m.RTWVehicleCount, m.NEFVehicleCount, m.PositionDemand)
			}
			fmt.Println()

			fmt.Printf("%-30s %8s %10s %8s %10s\n", "Name", "Target", "Weighted", "Driven", "Remaining")
			for _, row := range report.Rows {
				fmt.Printf("%-30s %8d %10d %8d %10d\n",
					row.Person.FullName(), row.YearlyTarget, row.WeightedTarget, row.Driven, row.Remaining)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Report year (defaults to the configured year)")

	return cmd
}
