package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pipeline settings",
	Long: `View and change pipeline settings stored in config.toml.

Settings can also be overridden with DOCFLOW_* environment variables,
for example DOCFLOW_PIPELINE_POLL_INTERVAL=2s.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Durations use Go syntax (500ms, 5s, 1m).

Run 'docflow config show' to list the available keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Intake directory: %s\n", settings.IntakeDir)
	cmd.Printf("  Processed directory: %s\n", settings.ProcessedDir)
	cmd.Printf("  Poll interval: %s\n", settings.PollInterval)
	cmd.Printf("  Workers: %d\n", settings.Workers)
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Timeout: %s\n", settings.Provider.Timeout)
	cmd.Printf("  Retries: %d\n", settings.Provider.Retries)
	cmd.Printf("  Backoff: %s\n", settings.Provider.Backoff)
	cmd.Printf("  Rate limit: %s\n", formatRate(settings.Provider))
	cmd.Println()

	cmd.Println("[Simulation]")
	cmd.Printf("  Latency: %s\n", onOff(settings.SimulateLatency))
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data directory: %s\n", dataDir)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}

	cmd.Printf("Keys: %s\n", strings.Join(settingsService.Keys(), ", "))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func formatRate(p domain.ProviderSettings) string {
	if p.RateLimit <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g/s (burst %d)", p.RateLimit, p.Burst)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
