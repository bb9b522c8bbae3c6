package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/services"
)

// HolidaysCmd creates the holidays command
func HolidaysCmd(app *AppContext) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "holidays <year>",
		Short: "List the holidays of a year, or regenerate them from the configured rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			if generate {
				if len(app.Cfg.HolidayRules) == 0 {
					return fmt.Errorf("no holiday rules configured")
				}
				result, err := services.GenerateHolidays(app.Ctx, app.Database, app.Cfg.HolidayRules, year, app.Logger)
				if err != nil {
					return err
				}
				fmt.Printf("\n✓ Generated %d holidays for %d\n", result.Generated, result.Year)
			}

			holidays, err := app.Database.Holidays(app.Ctx, year)
			if err != nil {
				return err
			}

			fmt.Printf("\nHolidays %d:\n\n", year)
			if len(holidays) == 0 {
				fmt.Printf("  (none)\n")
			}
			for _, h := range holidays {
				fmt.Printf("  %s  %s\n", h.Date, h.Name)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, "Regenerate the year's holidays from the configured rules first")

	return cmd
}
