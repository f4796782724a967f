package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/orchestrator"
)

var (
	actionConfigPath  string
	actionUserID      string
	actionSkill       string
	actionProjectID   string
	actionJobID       string
	actionAPIKey      string
	actionDatabaseURL string
	actionTimeout     int
)

var actionCmd = &cobra.Command{
	Use:   "action <name>",
	Short: "Run one journey step action for a user",
	Long: `Run a single journey action end-to-end: validate its precursors, generate the
artifact, and persist it together with the step's completion flag.

Action names: career_analysis, skill_validation, learning_plan, project_ideas,
project_plan, project_build, resume_upgrade, job_matching, interview_prep.`,
	Args: cobra.ExactArgs(1),
	RunE: runActionCmd,
}

func init() {
	actionCmd.Flags().StringVar(&actionConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	actionCmd.Flags().StringVarP(&actionUserID, "user", "u", "", "User UUID")
	actionCmd.Flags().StringVar(&actionSkill, "skill", "", "Skill to plan (learning_plan only)")
	actionCmd.Flags().StringVar(&actionProjectID, "project-id", "", "Project idea UUID (project_plan only)")
	actionCmd.Flags().StringVar(&actionJobID, "job-id", "", "Matched job UUID (interview_prep only)")
	actionCmd.Flags().StringVar(&actionAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	actionCmd.Flags().StringVar(&actionDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	actionCmd.Flags().IntVar(&actionTimeout, "timeout", 0, "Per-generation timeout in seconds")
	rootCmd.AddCommand(actionCmd)
}

func runActionCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	actionName := args[0]

	cfg, err := mergeCLIConfig(actionConfigPath, config.Config{
		UserID:         actionUserID,
		APIKey:         actionAPIKey,
		DatabaseURL:    actionDatabaseURL,
		TimeoutSeconds: actionTimeout,
	})
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (--api-key flag or GEMINI_API_KEY env var)")
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", cfg.UserID, err)
	}

	params := orchestrator.ActionParams{Skill: actionSkill}
	if actionProjectID != "" {
		params.ProjectID, err = uuid.Parse(actionProjectID)
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", actionProjectID, err)
		}
	}
	if actionJobID != "" {
		params.JobID, err = uuid.Parse(actionJobID)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", actionJobID, err)
		}
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	svc := orchestrator.New(database, generate.NewLLMGenerator(llmClient),
		time.Duration(cfg.TimeoutSeconds)*time.Second)

	result, err := svc.Run(ctx, userID, actionName, params)
	if err != nil {
		return err
	}

	if result.Fallback {
		fmt.Fprintln(os.Stderr, "Warning: generation output was malformed; a default artifact was stored instead")
	}
	fmt.Printf("Action %s completed.", result.Action)
	if result.NextStep != "" {
		fmt.Printf(" Next step: %s", result.NextStep)
	}
	fmt.Println()

	encoded, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
