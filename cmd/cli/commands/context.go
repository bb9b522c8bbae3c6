// Package commands contains the cobra commands of the wachplan CLI.
package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/internal/config"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// AppContext holds the dependencies shared by all commands
type AppContext struct {
	Cfg      *config.Config
	Database *db.DB
	Logger   *zap.Logger
	Ctx      context.Context

	// Env selects the oauthClient.<env>.json credentials file for
	// Google Sheets imports. Empty means oauthClient.json.
	Env string
}
