package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/internal/config"
	"github.com/mhagedorn/wachplan/pkg/clients/sheetsclient"
	"github.com/mhagedorn/wachplan/pkg/core/importer"
	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/services"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd(app *AppContext) *cobra.Command {
	var (
		year      int
		month     int
		file      string
		sheetID   string
		overrides []string
	)

	cmd := &cobra.Command{
		Use:   "importRoster",
		Short: "Import the pre-planned duty roster from the planning spreadsheet",
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

			result, err := services.ImportDutyRoster(app.Ctx, app.Database, src, opts, app.Logger)
			if err != nil {
				return err
			}
			if !result.Success {
				fmt.Printf("\n✗ Import failed: %s\n\n", result.Message)
				return fmt.Errorf("import failed")
			}

			fmt.Printf("\n✓ Roster imported successfully!\n\n")
			fmt.Printf("Run ID:    %s\n", result.RunID)
			fmt.Printf("Rows:      %d (%d matched)\n", result.Total, result.Matched)
			fmt.Printf("Entries:   %d imported, %d skipped\n", result.Imported, result.Skipped)
			printUnmatched(result.Unmatched)

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Roster year (defaults to the configured year)")
	cmd.Flags().IntVar(&month, "month", 0, "Restrict the import to one month (1-12)")
	cmd.Flags().StringVar(&file, "file", "", "Path to the planning xlsx file")
	cmd.Flags().StringVar(&sheetID, "sheet", "", "Google Sheets spreadsheet ID")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "Name override, e.g. --override meier=person/3")

	return cmd
}

// importOptions resolves year, month scope and name overrides.
func importOptions(app *AppContext, year, month int, overrides []string) (importer.Options, error) {
	if year == 0 {
		value, found, err := app.Database.Setting(app.Ctx, db.SettingYear)
		if err != nil {
			return importer.Options{}, err
		}
		if !found {
			return importer.Options{}, fmt.Errorf("no year configured, pass --year")
		}
		year, err = strconv.Atoi(value)
		if err != nil {
			return importer.Options{}, fmt.Errorf("invalid configured year %q: %w", value, err)
		}
	}
	if month < 0 || month > 12 {
		return importer.Options{}, fmt.Errorf("month must be between 1 and 12")
	}

	opts := importer.Options{Year: year, Month: time.Month(month)}
	if len(overrides) > 0 {
		opts.Overrides = make(map[string]model.PersonRef, len(overrides))
		for _, o := range overrides {
			name, ref, err := parseOverride(o)
			if err != nil {
				return importer.Options{}, err
			}
			opts.Overrides[name] = ref
		}
	}
	return opts, nil
}

// parseOverride parses "surname=kind/id".
func parseOverride(s string) (string, model.PersonRef, error) {
	name, refStr, found := strings.Cut(s, "=")
	if !found || name == "" {
		return "", model.PersonRef{}, fmt.Errorf("invalid override %q, want surname=kind/id", s)
	}
	ref, err := parseRef(refStr)
	if err != nil {
		return "", model.PersonRef{}, fmt.Errorf("invalid override %q: %w", s, err)
	}
	return importer.NormalizeSurname(name), ref, nil
}

// parseRef parses a "kind/id" person reference.
func parseRef(s string) (model.PersonRef, error) {
	kindStr, idStr, found := strings.Cut(s, "/")
	if !found {
		return model.PersonRef{}, fmt.Errorf("invalid person reference %q, want kind/id", s)
	}
	kind := model.RefKind(kindStr)
	if !kind.IsValid() {
		return model.PersonRef{}, fmt.Errorf("invalid person kind %q", kindStr)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return model.PersonRef{}, fmt.Errorf("invalid person id %q: %w", idStr, err)
	}
	return model.PersonRef{Kind: kind, ID: id}, nil
}

// importSource picks the spreadsheet source: an explicit xlsx path, an
// explicit Google Sheet, or the configured defaults in that order.
func importSource(app *AppContext, file, sheetID string) (importer.Source, error) {
	if file == "" && sheetID == "" {
		sheetID = app.Cfg.PlanningSheetID
		if path, found, err := app.Database.Setting(app.Ctx, db.SettingRosterImportPath); err != nil {
			return nil, err
		} else if found {
			file = path
		}
	}

	if file != "" {
		return importer.NewFileSource(file), nil
	}
	if sheetID == "" {
		return nil, fmt.Errorf("no import source, pass --file or --sheet")
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return importer.NewSheetSource(client, sheetID), nil
}

func printUnmatched(names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("\nUnmatched names (rows skipped):\n")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println()
}
