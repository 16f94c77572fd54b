package cmd

import (
	"assessment_backend/internal/app"
	"assessment_backend/pkg/configwatcher"
	"assessment_backend/pkg/logger"
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	forceMigrate bool
	watchConfig  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&forceMigrate, "migrate", false, "Run database migrations on startup even in release mode")
	serveCmd.Flags().BoolVar(&watchConfig, "watch", true, "Reload the assessment settings when config.yaml changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ForceMigrate = forceMigrate

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if watchConfig {
		go func() {
			path := filepath.Join(configDir, "config.yaml")
			if err := configwatcher.Watch(ctx, path, application.ReloadConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	return application.Run(ctx)
}
