package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// ClearRosterCmd creates the clearRoster command
func ClearRosterCmd(app *AppContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clearRoster <year> [month]",
		Short: "Delete all roster entries of a year or month",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			month := 0
			if len(args) == 2 {
				month, err = strconv.Atoi(args[1])
				if err != nil || month < 1 || month > 12 {
					return fmt.Errorf("month must be a number between 1 and 12")
				}
			}

			scope := fmt.Sprintf("%d", year)
			if month != 0 {
				scope = fmt.Sprintf("%d-%02d", year, month)
			}
			if !force && !confirm(fmt.Sprintf("Delete all roster entries for %s?", scope)) {
				fmt.Println("Aborted.")
				return nil
			}

			if month == 0 {
				err = app.Database.ClearYear(app.Ctx, year)
			} else {
				err = app.Database.ClearMonth(app.Ctx, year, time.Month(month))
			}
			if err != nil {
				return fmt.Errorf("failed to clear roster: %w", err)
			}

			fmt.Printf("\n✓ Roster entries for %s deleted\n\n", scope)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
