package cmd

import (
	"assessment_backend/internal/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configDir string
	exitFunc  = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "assessment",
	Short: "Answer scoring and assessment navigation engine",
	Long: `assessment serves the answer scoring and navigation API and offers operator
commands for migrations and score recomputation.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "configs", "Directory holding config.yaml")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}
