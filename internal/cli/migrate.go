package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skillcheck-ai/skillcheck-api/internal/config"
	"github.com/skillcheck-ai/skillcheck-api/internal/results"
	"github.com/skillcheck-ai/skillcheck-api/internal/user"
)

// NewMigrateCmd applies the database schema.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database dsn not configured")
	}

	if err := config.Connect(ctx, cfg.Database.DSN); err != nil {
		return err
	}

	if err := config.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	if err := config.DB.AutoMigrate(&user.User{}, &results.QuizResult{}); err != nil {
		return err
	}

	logrus.Info("Migrations applied")
	return nil
}
