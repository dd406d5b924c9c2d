package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

// Agent names used for CLI-level steps.
const (
	agentIngestor     = "Ingestor Agent"
	agentOrchestrator = "Orchestrator"
)

const bannerText = "--- DOCUMENT INGESTION & CLASSIFICATION PIPELINE ---"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the intake directory and process documents",
	Long: `Starts the processing loop. Every poll cycle claims at most one document
from the intake directory and drives it through extraction, classification
and routing. Routed documents are moved to the processed directory; failed
ones stay where they are.

Press Ctrl+C to stop. A document already in flight always finishes.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("intake", "", "Intake directory (overrides config)")
	runCmd.Flags().String("processed", "", "Processed directory (overrides config)")
	runCmd.Flags().Duration("interval", 0, "Poll interval (overrides config)")
	runCmd.Flags().Bool("no-watch", false, "Disable filesystem notifications and rely on polling")
	runCmd.Flags().Bool("once", false, "Run a single poll cycle and exit")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	settings, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	once, _ := cmd.Flags().GetBool("once")

	asm, err := builder(*settings, BuildOptions{
		Out:   cmd.OutOrStdout(),
		Watch: !noWatch && !once,
		Poll:  !once,
	})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer closeAssembly(asm)

	rep := asm.Reporter
	rep.Banner(bannerText)
	rep.Step(agentIngestor, fmt.Sprintf("Monitoring directory: '%s'", settings.IntakeDir))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if once {
		out, err := asm.Pipeline.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("poll cycle: %w", err)
		}
		if out == nil {
			rep.Notice("No documents waiting.")
			return nil
		}
		rep.Section("--- End of Processing ---")
		return nil
	}

	if asm.Poller == nil {
		return errors.New("poller not configured")
	}

	rep.Notice("Starting processing loop... (Press Ctrl+C to stop)")
	err = asm.Poller.Start(ctx)
	stats := asm.Poller.Stats()

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rep.Notice("Processing stopped by user. Exiting.")
	case err != nil:
		return fmt.Errorf("processing loop: %w", err)
	}

	cmd.Printf("Run %s: %d cycles, %d processed, %d failed, %d not archived\n",
		stats.RunID, stats.Cycles, stats.Processed, stats.Failed, stats.ArchiveErrors)
	return nil
}

// loadRunSettings reads settings and applies flag overrides.
func loadRunSettings(cmd *cobra.Command) (*domain.PipelineSettings, error) {
	if err := requireSettings(); err != nil {
		return nil, err
	}
	if builder == nil {
		return nil, errors.New("pipeline builder not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if cmd.Flags().Changed("intake") {
		settings.IntakeDir, _ = cmd.Flags().GetString("intake")
	}
	if cmd.Flags().Changed("processed") {
		settings.ProcessedDir, _ = cmd.Flags().GetString("processed")
	}
	if cmd.Flags().Changed("interval") {
		settings.PollInterval, _ = cmd.Flags().GetDuration("interval")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func closeAssembly(asm *Assembly) {
	if asm.Close == nil {
		return
	}
	_ = asm.Close()
}
