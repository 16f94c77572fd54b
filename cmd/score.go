package cmd

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/service"
	"assessment_backend/pkg/database"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

var (
	tenantID   string
	jsonOutput bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Recompute and print score trees",
}

var scorePotentialCmd = &cobra.Command{
	Use:   "potential <matrix-id>",
	Short: "Recompute the potential score of an assessment matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := newScoreService()
		if err != nil {
			return err
		}
		defer closeDB()

		ps, err := svc.RecomputePotentialScore(cmd.Context(), args[0], tenantID)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), "Potential score "+args[0], model.ScoreTree(*ps))
	},
}

var scoreActualCmd = &cobra.Command{
	Use:   "actual <employee-assessment-id>",
	Short: "Recompute the actual score of one respondent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := newScoreService()
		if err != nil {
			return err
		}
		defer closeDB()

		score, err := svc.RecomputeActualScore(cmd.Context(), args[0], tenantID)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), "Actual score "+args[0], model.ScoreTree(*score))
	},
}

func init() {
	scoreCmd.PersistentFlags().StringVarP(&tenantID, "tenant", "t", "", "Tenant owning the matrix or assessment")
	scoreCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the tree as JSON")
	_ = scoreCmd.MarkPersistentFlagRequired("tenant")

	scoreCmd.AddCommand(scorePotentialCmd, scoreActualCmd)
	rootCmd.AddCommand(scoreCmd)
}

func newScoreService() (*service.ScoreService, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.InitDB(&cfg.Database, false, false)
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewScoreService(
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewEmployeeAssessmentRepository(db),
		repository.NewAssessmentMatrixRepository(db),
	)
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return svc, closeDB, nil
}

func printTree(w io.Writer, title string, tree model.ScoreTree) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}
	_, err := io.WriteString(w, renderTree(title, tree, newTreeStyles()))
	return err
}
