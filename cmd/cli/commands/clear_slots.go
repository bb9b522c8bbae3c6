package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ClearSlotsCmd creates the clearSlots command
func ClearSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clearSlots",
		Short: "Clear all vehicle and ITW slot assignments",
		Long: `Blank every slot assignment across the roster. Duty codes stay
untouched; generic "V" markers are also blanked unless V is a
configured shift type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.ClearSlotAssignments(app.Ctx); err != nil {
				return fmt.Errorf("failed to clear slot assignments: %w", err)
			}

			fmt.Printf("\n✓ All slot assignments cleared\n\n")
			return nil
		},
	}
}
