// Command docflow runs the document intake, classification and routing
// pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/docflow/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docflow/internal/adapters/driven/console"
	"github.com/custodia-labs/docflow/internal/adapters/driven/intake/filesystem"
	"github.com/custodia-labs/docflow/internal/adapters/driven/ocr"
	"github.com/custodia-labs/docflow/internal/adapters/driven/provider/keyword"
	"github.com/custodia-labs/docflow/internal/adapters/driven/provider/ratelimit"
	"github.com/custodia-labs/docflow/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docflow/internal/adapters/driving/cli"
	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/services"
	"github.com/custodia-labs/docflow/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, setup, version); err != nil {
		os.Exit(1)
	}
}

// setup wires the shared services for one invocation.
func setup(configDir string) (*cli.Services, error) {
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(cfg)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(filepath.Dir(cfg.Path()), "data")
	}

	var eventStore driven.EventStore
	var closeStore func() error
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		// The pipeline still runs without an audit log.
		logger.Error("open event store: %v", err)
	} else {
		eventStore = store.EventStore()
		closeStore = store.Close
		logger.Debug("event store at %s", store.Path())
	}

	return &cli.Services{
		Settings: settingsService,
		Events:   services.NewEventService(eventStore),
		Build:    newBuilder(eventStore, services.NewRunID()),
		Close: func() error {
			if closeStore == nil {
				return nil
			}
			return closeStore()
		},
	}, nil
}

// newBuilder returns a cli.Builder that assembles the pipeline with the
// filesystem intake and simulated providers.
func newBuilder(store driven.EventStore, runID string) cli.Builder {
	return func(settings domain.PipelineSettings, opts cli.BuildOptions) (*cli.Assembly, error) {
		intake, err := filesystem.New(settings.IntakeDir, settings.ProcessedDir)
		if err != nil {
			return nil, err
		}

		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		reporter := console.New(out, console.WithColor(colorFor(out)))

		latency := settings.Latency()
		limiter := ratelimit.FromSettings(settings.Provider)
		entities := ratelimit.WrapEntityExtractor(keyword.NewEntityExtractor(latency.EntityExtraction), limiter)
		classifier := ratelimit.WrapClassifier(keyword.NewClassifier(), limiter)
		recogniser := ratelimit.WrapRecogniser(ocr.NewPlaceholder(), limiter)

		stages := services.NewStages(intake, recogniser, entities, classifier, settings, reporter)
		pipeline := services.NewPipeline(intake, stages, store, reporter, settings.Workers, runID)

		asm := &cli.Assembly{
			Pipeline: pipeline,
			Locate:   filesystem.Stat,
			Reporter: reporter,
		}

		var watcher *filesystem.Watcher
		if opts.Poll {
			var w driven.IntakeWatcher
			if opts.Watch {
				watcher = filesystem.NewWatcher(intake.Dir())
				w = watcher
			}
			asm.Poller = services.NewPoller(pipeline, w, settings.PollInterval, reporter, runID)
		}

		asm.Close = func() error {
			if watcher == nil {
				return nil
			}
			if err := watcher.Close(); err != nil && !errors.Is(err, filesystem.ErrWatcherClosed) {
				return err
			}
			return nil
		}
		return asm, nil
	}
}

func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return console.ColorEnabled(f)
}
