package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/services"
)

// PreviewRosterCmd creates the previewRoster command
func PreviewRosterCmd(app *AppContext) *cobra.Command {
	var (
		year      int
		month     int
		file      string
		sheetID   string
		overrides []string
	)

	cmd := &cobra.Command{
		Use:   "previewRoster",
		Short: "Dry-run a roster import without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := importOptions(app, year, month, overrides)
			if err != nil {
				return err
			}
			src, err := importSource(app, file, sheetID)
			if err != nil {
				return err
			}

			result, err := services.PreviewDutyRoster(app.Ctx, app.Database, src, opts, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n📋 Import Preview\n\n")
			fmt.Printf("Rows:       %d (%d matched)\n", result.Total, result.Matched)
			fmt.Printf("Overwrites: %d existing entries would change\n", result.Overwrites)
			printUnmatched(result.UnmatchedNames)

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Roster year (defaults to the configured year)")
	cmd.Flags().IntVar(&month, "month", 0, "Restrict the preview to one month (1-12)")
	cmd.Flags().StringVar(&file, "file", "", "Path to the planning xlsx file")
	cmd.Flags().StringVar(&sheetID, "sheet", "", "Google Sheets spreadsheet ID")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "Name override, e.g. --override meier=person/3")

	return cmd
}
