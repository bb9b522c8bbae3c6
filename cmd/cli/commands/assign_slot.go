package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/services"
)

// AssignSlotCmd creates the assignSlot command
func AssignSlotCmd(app *AppContext) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "assignSlot <kind/id> <date> <slot>",
		Short: "Assign a person to a vehicle or ITW slot on a date",
		Long: `Assign a person to a slot, e.g. "assignSlot person/3 2026-06-01 rtw1_tag_1".
Pass an empty slot ("") to clear the person's assignment on that date.
With --list, show the eligible staff for the slot instead of assigning
(the first argument is ignored then).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, slotID := args[1], args[2]

			if list {
				eligible, err := services.EligiblePersons(app.Ctx, app.Database, date, slotID)
				if err != nil {
					return err
				}
				fmt.Printf("\nEligible for %s on %s:\n\n", slotID, date)
				for _, p := range eligible {
					fmt.Printf("  - %s (%s)\n", p.FullName(), p.Ref())
				}
				fmt.Println()
				return nil
			}

			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("assignSlot command",
				zap.String("ref", ref.String()),
				zap.String("date", date),
				zap.String("slot", slotID))

			result, err := services.AssignSlot(app.Ctx, app.Database, ref, date, slotID, app.Logger)
			if err != nil {
				return err
			}

			if slotID == "" {
				fmt.Printf("\n✓ Assignment cleared for %s on %s\n\n", ref, date)
				return nil
			}

			fmt.Printf("\n✓ Slot assigned\n\n")
			fmt.Printf("Person:    %s\n", ref)
			fmt.Printf("Date:      %s\n", date)
			fmt.Printf("Slot:      %s\n", slotID)
			fmt.Printf("Duty code: %s (%s)\n", result.DutyCode, result.Category)
			if !result.Eligible {
				fmt.Printf("\n⚠ Duty code does not match the slot's shift segment\n")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List eligible staff for the slot instead of assigning")

	return cmd
}
