package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

var (
	goalConfigPath  string
	goalUserID      string
	goalTargetRole  string
	goalDomainFlag  string
	goalCurrentRole string
	goalExperience  string
	goalResumePath  string
	goalDatabaseURL string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Set or replace a user's career goal",
	Long: `Store the target role, domain, and resume text that seed the journey's first
action. Career analysis cannot run before a goal exists.`,
	RunE: runGoalCmd,
}

func init() {
	goalCmd.Flags().StringVar(&goalConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	goalCmd.Flags().StringVarP(&goalUserID, "user", "u", "", "User UUID")
	goalCmd.Flags().StringVar(&goalTargetRole, "target-role", "", "Role the user is working toward (required)")
	goalCmd.Flags().StringVar(&goalDomainFlag, "domain", "", "Industry or technical domain")
	goalCmd.Flags().StringVar(&goalCurrentRole, "current-role", "", "The user's current role")
	goalCmd.Flags().StringVar(&goalExperience, "experience", "", "Years or level of experience")
	goalCmd.Flags().StringVar(&goalResumePath, "resume", "", "Path to a plain-text resume file")
	goalCmd.Flags().StringVar(&goalDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(goalCmd)
}

func runGoalCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeCLIConfig(goalConfigPath, config.Config{
		UserID:      goalUserID,
		DatabaseURL: goalDatabaseURL,
	})
	if err != nil {
		return err
	}
	if goalTargetRole == "" {
		return fmt.Errorf("--target-role is required")
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	var resumeText string
	if goalResumePath != "" {
		data, err := os.ReadFile(goalResumePath)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		resumeText = string(data)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	goal := &types.UserGoal{
		UserID:      userID.String(),
		TargetRole:  goalTargetRole,
		Domain:      goalDomainFlag,
		CurrentRole: goalCurrentRole,
		Experience:  goalExperience,
		ResumeText:  resumeText,
	}
	if err := database.UpsertUserGoal(ctx, goal); err != nil {
		return fmt.Errorf("failed to store goal: %w", err)
	}

	fmt.Printf("Goal set for user %s: %s\n", userID, goalTargetRole)
	return nil
}
