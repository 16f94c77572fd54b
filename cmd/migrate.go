package cmd

import (
	"assessment_backend/pkg/database"
	"assessment_backend/pkg/logger"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the engine tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug", true)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(database.Models))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
