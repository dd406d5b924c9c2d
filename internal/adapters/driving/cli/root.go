// Package cli provides the cobra command tree for docflow.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
	"github.com/custodia-labs/docflow/internal/logger"
)

var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by commands. Set by Setup before a command runs.
var (
	settingsService driving.SettingsService
	eventService    driving.EventService
	builder         Builder
	closeServices   func() error
)

// Reporter is the operator console: agent steps plus run headings.
type Reporter interface {
	driven.StepReporter

	// Banner writes the start-of-run heading.
	Banner(text string)

	// Section writes a separator between documents.
	Section(text string)

	// Notice writes a highlighted status line.
	Notice(text string)
}

// Assembly is a pipeline wired for one invocation.
type Assembly struct {
	Pipeline driving.Pipeline

	// Poller drives the pipeline from the intake. Nil when not requested.
	Poller driving.Poller

	// Locate turns a path into a document for explicit processing.
	Locate func(path string) (domain.RawDocument, error)

	Reporter Reporter

	// Close releases everything the assembly opened.
	Close func() error
}

// BuildOptions tunes an assembly.
type BuildOptions struct {
	// Out receives the agent step log.
	Out io.Writer

	// Watch enables the fsnotify wake-up on the intake.
	Watch bool

	// Poll requests a Poller.
	Poll bool
}

// Builder assembles a pipeline for the given settings.
type Builder func(settings domain.PipelineSettings, opts BuildOptions) (*Assembly, error)

// Services is what Setup provides to the command tree.
type Services struct {
	Settings driving.SettingsService
	Events   driving.EventService
	Build    Builder

	// Close releases shared resources such as the event store.
	Close func() error
}

// SetupFunc creates services for a config directory. An empty directory
// means the default location.
type SetupFunc func(configDir string) (*Services, error)

var setup SetupFunc

var rootCmd = &cobra.Command{
	Use:   "docflow",
	Short: "Document intake, classification and routing pipeline",
	Long: `docflow watches an intake directory and moves every document through
extraction, classification and routing before archiving it.

Run 'docflow run' to start the processing loop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if setup == nil {
			return nil
		}
		svcs, err := setup(configDir)
		if err != nil {
			return fmt.Errorf("initialise services: %w", err)
		}
		settingsService = svcs.Settings
		eventService = svcs.Events
		builder = svcs.Build
		closeServices = svcs.Close
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return shutdown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.docflow)")
}

// Execute runs the command tree.
func Execute(ctx context.Context, setupFn SetupFunc, v string) error {
	setup = setupFn
	if v != "" {
		version = v
	}
	err := rootCmd.ExecuteContext(ctx)
	if cerr := shutdown(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func shutdown() error {
	if closeServices == nil {
		return nil
	}
	fn := closeServices
	closeServices = nil
	return fn()
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}
