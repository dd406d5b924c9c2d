package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List processed document events",
	Long: `Lists the audit log of documents that left the pipeline, newest first.
Use --status to show only routed or failed documents.`,
	Args: cobra.NoArgs,
	RunE: runEventsList,
}

var eventsShowCmd = &cobra.Command{
	Use:   "show [event-id]",
	Short: "Show the final state of an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsShow,
}

func init() {
	eventsCmd.Flags().String("status", "", "Only show events with this status (e.g. ROUTED, EXTRACTION_FAILED)")
	eventsCmd.Flags().Int("limit", 20, "Maximum number of events (0 for all)")
	eventsCmd.AddCommand(eventsShowCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsList(cmd *cobra.Command, _ []string) error {
	if eventService == nil {
		return errors.New("event service not configured")
	}

	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	records, err := eventService.List(cmd.Context(), domain.EventFilter{
		Status: domain.Status(strings.ToUpper(status)),
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No events recorded.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "RECORDED", "FILE", "STATUS", "TYPE", "CONFIDENCE")
	for i := range records {
		rec := &records[i]
		docType, confidence := "-", "-"
		if c := rec.Event.Classification; c != nil {
			docType = c.DocumentType.String()
			confidence = fmt.Sprintf("%.2f", c.Confidence)
		}
		t.Row(
			rec.Event.ID,
			rec.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Event.Filename,
			rec.Event.Status.String(),
			docType,
			confidence,
		)
	}
	cmd.Println(t.Render())
	cmd.Printf("%d event(s)\n", len(records))
	return nil
}

// eventView is the JSON shape printed by events show.
type eventView struct {
	Event        *domain.Event `json:"event"`
	RunID        string        `json:"run_id,omitempty"`
	ArchivedPath string        `json:"archived_path,omitempty"`
	ArchiveError string        `json:"archive_error,omitempty"`
	RecordedAt   string        `json:"recorded_at"`
}

func runEventsShow(cmd *cobra.Command, args []string) error {
	if eventService == nil {
		return errors.New("event service not configured")
	}

	rec, err := eventService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("event %s not found", args[0])
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	data, err := json.MarshalIndent(eventView{
		Event:        &rec.Event,
		RunID:        rec.RunID,
		ArchivedPath: rec.ArchivedPath,
		ArchiveError: rec.ArchiveError,
		RecordedAt:   rec.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
