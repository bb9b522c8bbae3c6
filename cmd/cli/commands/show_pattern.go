package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/services"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// ShowPatternCmd creates the showPattern command
func ShowPatternCmd(app *AppContext) *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "showPattern",
		Short: "Show the stored pattern sequences, or one month's calendar",
		Long: `Without flags, list the stored department and ITW pattern sequences.
With --year and --month, show the classified calendar of that month:
department symbol, duty days, ITW days and holidays.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year != 0 || month != 0 {
				if year == 0 || month < 1 || month > 12 {
					return fmt.Errorf("pass both --year and --month (1-12)")
				}
				return showCalendar(app, year, time.Month(month))
			}
			return showSequences(app)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Calendar year")
	cmd.Flags().IntVar(&month, "month", 0, "Calendar month (1-12)")

	return cmd
}

func showSequences(app *AppContext) error {
	for _, kind := range []db.PatternKind{db.PatternDept, db.PatternITW} {
		seqs, err := app.Database.Patterns(app.Ctx, kind)
		if err != nil {
			return err
		}

		fmt.Printf("\n%s patterns:\n", kind)
		if len(seqs) == 0 {
			fmt.Printf("  (none)\n")
			continue
		}
		for _, seq := range seqs {
			fmt.Printf("  %s  %s\n", seq.Start.Format("2006-01-02"), strings.Join(seq.Symbols, ","))
		}
	}
	fmt.Println()
	return nil
}

func showCalendar(app *AppContext, year int, month time.Month) error {
	days, err := services.MonthCalendar(app.Ctx, app.Database, year, month)
	if err != nil {
		return err
	}

	fmt.Printf("\n📅 %s %d\n\n", month, year)
	fmt.Printf("%-12s %6s %6s %5s  %s\n", "Date", "Dept", "Duty", "ITW", "Holiday")
	for _, day := range days {
		duty := ""
		if day.DeptDuty {
			duty = "✓"
		}
		itw := ""
		if day.ITWDay {
			itw = "✓"
		}
		fmt.Printf("%-12s %6s %6s %5s  %s\n", day.Date, day.DeptSymbol, duty, itw, day.Holiday)
	}
	fmt.Println()
	return nil
}
