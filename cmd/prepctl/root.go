package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-prep/internal/app"
	"github.com/p-n-ai/pai-prep/internal/platform/config"
	"github.com/p-n-ai/pai-prep/internal/platform/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prepctl",
		Short:         "Inspect, validate and export the interview-prep roadmap",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			_, err := logging.Setup(cmd.ErrOrStderr(), level, "text")
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.String("schedule-dir", "", "Roadmap directory with day-NN folders (overrides LEARN_CONTENT_SCHEDULE_DIR)")
	flags.String("corpus-root", "", "Root that topic paths are relative to (overrides LEARN_CONTENT_CORPUS_ROOT)")
	flags.String("policy", "", "YAML quota policy file (overrides LEARN_SCHEDULE_POLICY_PATH)")
	flags.Int("days", 0, "Number of roadmap days to check (overrides LEARN_SCHEDULE_DAYS)")
	flags.Int("min-topics", -1, "Minimum topics per day (overrides LEARN_SCHEDULE_MIN_TOPICS)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newDayCmd())
	root.AddCommand(newQuestionsCmd())
	return root
}

// loadConfig reads the environment configuration and applies flag
// overrides. The redis cache is never used from the CLI.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()

	if v, _ := flags.GetString("schedule-dir"); v != "" {
		cfg.Content.ScheduleDir = v
	}
	if v, _ := flags.GetString("corpus-root"); v != "" {
		cfg.Content.CorpusRoot = v
	}
	if v, _ := flags.GetString("policy"); v != "" {
		cfg.Schedule.PolicyPath = v
	}
	if v, _ := flags.GetInt("days"); v > 0 {
		cfg.Schedule.Days = v
	}
	if v, _ := flags.GetInt("min-topics"); v >= 0 {
		cfg.Schedule.MinTopics = v
	}
	cfg.Cache.Enabled = false

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
