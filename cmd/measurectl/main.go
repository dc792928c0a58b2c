package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/georgemunganga/obra-measure/internal/client"
	"github.com/georgemunganga/obra-measure/internal/config"
	"github.com/georgemunganga/obra-measure/internal/workflow"
)

var (
	cfg       *config.Config
	projectID string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:           "measurectl",
		Short:         "Drive the construction measurement workflow",
		Long:          "measurectl generates floor/position locations, assigns typologies to them, captures measured sizes and prints the measurement report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&projectID, "project", "", "project id (overrides client.project_id)")

	rootCmd.AddCommand(
		tokenCmd(),
		typologiesCmd(),
		locationsCmd(),
		generateCmd(),
		deleteFloorCmd(),
		assignCmd(),
		measureCmd(),
		reportCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return config.NewLogger(cfg.Logging, os.Stderr)
}

func newClient(logger *slog.Logger) *client.Client {
	return client.New(cfg.Client.BaseURL, cfg.Client.Token, cfg.Client.Timeout(), logger)
}

func resolveProject() (uuid.UUID, error) {
	raw := projectID
	if raw == "" {
		raw = cfg.Client.ProjectID
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("project id is required: pass --project or set OBRA_PROJECT_ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid project id %q: %w", raw, err)
	}
	return id, nil
}

// openSession builds a refreshed session against the configured store.
func openSession(ctx context.Context, logger *slog.Logger) (*workflow.Session, error) {
	pid, err := resolveProject()
	if err != nil {
		return nil, err
	}
	s := workflow.NewSession(pid, newClient(logger), logger)
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// splitAddress parses "FLOOR/POSITION".
func splitAddress(addr string) (floor, position string, err error) {
	floor, position, ok := strings.Cut(strings.TrimSpace(addr), "/")
	if !ok || floor == "" || position == "" {
		return "", "", fmt.Errorf("invalid location %q: want FLOOR/POSITION", addr)
	}
	return floor, position, nil
}

func orDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
