package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listStaff",
		Short: "List all staff members, apprentices and doctors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			persons, err := app.Database.Persons(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list staff: %w", err)
			}
			apprentices, err := app.Database.Apprentices(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list apprentices: %w", err)
			}
			doctors, err := app.Database.Doctors(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list doctors: %w", err)
			}

			fmt.Printf("\nStaff (%d):\n\n", len(persons))
			for _, p := range persons {
				fmt.Printf("  %-12s %-30s %4d%%  %s\n",
					p.Ref(), p.FullName(), p.PartTimePercent, qualifications(p))
			}

			fmt.Printf("\nApprentices (%d):\n\n", len(apprentices))
			for _, a := range apprentices {
				fmt.Printf("  %-12s %s\n", a.Ref(), a.FullName())
			}

			fmt.Printf("\nDoctors (%d):\n\n", len(doctors))
			for _, d := range doctors {
				fmt.Printf("  %-12s %s, %s\n", d.Ref(), d.Surname, d.GivenName)
			}
			fmt.Println()

			return nil
		},
	}
}

// qualifications renders a person's qualification flags.
func qualifications(p model.Person) string {
	var quals []string
	if p.VehicleCommander {
		quals = append(quals, "commander")
	}
	if p.HeavyVehicleCommander {
		quals = append(quals, "heavy")
	}
	if p.NEFQualified {
		quals = append(quals, "nef")
	}
	if p.ITWMachinist {
		quals = append(quals, "itw-machinist")
	}
	if p.ITWCommander {
		quals = append(quals, "itw-commander")
	}
	return strings.Join(quals, ", ")
}
