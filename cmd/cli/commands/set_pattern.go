package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/wachplan/pkg/core/pattern"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// SetPatternCmd creates the setPattern command
func SetPatternCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setPattern <dept|itw> <start-date> <symbols>",
		Short: "Store a 21-day pattern sequence starting at a date",
		Long: `Store a pattern sequence, e.g.
"setPattern dept 2026-01-05 1,2,3,1,2,3,1,2,3,1,2,3,1,2,3,1,2,3,1,2,3".
Department symbols are 1-3, ITW symbols are IW or empty. Sequences
shorter than 21 symbols are padded, longer ones truncated.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := patternKind(args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q, want YYYY-MM-DD: %w", args[1], err)
			}

			symbols := strings.Split(args[2], ",")
			for i := range symbols {
				symbols[i] = strings.TrimSpace(symbols[i])
			}

			seq := pattern.Sequence{Start: start, Symbols: symbols}
			if err := app.Database.UpsertPattern(app.Ctx, kind, seq); err != nil {
				return fmt.Errorf("failed to store pattern: %w", err)
			}

			fmt.Printf("\n✓ %s pattern stored starting %s\n\n", args[0], args[1])
			return nil
		},
	}
}

// patternKind maps the CLI argument to the stored pattern kind.
func patternKind(arg string) (db.PatternKind, error) {
	switch arg {
	case "dept":
		return db.PatternDept, nil
	case "itw":
		return db.PatternITW, nil
	}
	return "", fmt.Errorf("invalid pattern kind %q, want dept or itw", arg)
}
