package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

var processCmd = &cobra.Command{
	Use:   "process FILE...",
	Short: "Process specific files",
	Long: `Runs the given files through the pipeline without polling. Files are
processed concurrently, bounded by the configured worker count. Routed
files are moved to the processed directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("processed", "", "Processed directory (overrides config)")
	processCmd.Flags().Int("workers", 0, "Concurrent documents (overrides config)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	if builder == nil {
		return errors.New("pipeline builder not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if cmd.Flags().Changed("processed") {
		settings.ProcessedDir, _ = cmd.Flags().GetString("processed")
	}
	if cmd.Flags().Changed("workers") {
		settings.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	asm, err := builder(*settings, BuildOptions{Out: cmd.OutOrStdout()})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer closeAssembly(asm)
	if asm.Locate == nil {
		return errors.New("document locator not configured")
	}

	raws := make([]domain.RawDocument, 0, len(args))
	for _, path := range args {
		raw, err := asm.Locate(path)
		if err != nil {
			return err
		}
		raws = append(raws, raw)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcomes, err := asm.Pipeline.ProcessBatch(ctx, raws)
	cmd.Println()
	cmd.Println(outcomeTable(outcomes))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			asm.Reporter.Notice("Processing stopped by user. Exiting.")
			return nil
		}
		return err
	}
	return nil
}

func outcomeTable(outcomes []*driving.Outcome) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FILE", "STATUS", "TYPE", "ARCHIVED")

	for _, out := range outcomes {
		if out == nil {
			continue
		}
		ev := out.Event
		docType := "-"
		if ev.Classification != nil {
			docType = ev.Classification.DocumentType.String()
		}
		archived := "-"
		switch {
		case out.ArchivedPath != "":
			archived = out.ArchivedPath
		case out.ArchiveErr != nil:
			archived = "error: " + out.ArchiveErr.Error()
		}
		t.Row(ev.Filename, ev.Status.String(), docType, archived)
	}
	return t.Render()
}
