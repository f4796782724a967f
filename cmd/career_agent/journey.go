package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/aggregate"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/observability"
)

var (
	journeyConfigPath  string
	journeyUserID      string
	journeyDatabaseURL string
	journeyVerbose     bool
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Show the computed journey state for a user",
	Long: `Aggregate the user's records, recompute stage and step statuses, and print the
three-stage roadmap. The journey is derived fresh on every invocation; nothing is mutated.`,
	RunE: runJourneyCmd,
}

func init() {
	journeyCmd.Flags().StringVar(&journeyConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	journeyCmd.Flags().StringVarP(&journeyUserID, "user", "u", "", "User UUID")
	journeyCmd.Flags().StringVar(&journeyDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	journeyCmd.Flags().BoolVarP(&journeyVerbose, "verbose", "v", false, "Also print career advice and skill validation detail")
	rootCmd.AddCommand(journeyCmd)
}

func runJourneyCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeCLIConfig(journeyConfigPath, config.Config{
		UserID:      journeyUserID,
		DatabaseURL: journeyDatabaseURL,
		Verbose:     journeyVerbose,
	})
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	snap, err := aggregate.New(database).FetchAll(ctx, userID)
	if err != nil {
		return err
	}
	state := journey.ComputeStages(snap)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJourney(&state)

	if cfg.Verbose {
		printer.PrintCareerAdvice(snap.CareerAdvice)
		printer.PrintSkillValidation(snap.SkillValidation)
		printer.PrintJobMatches(snap.Jobs)
	}

	return nil
}
