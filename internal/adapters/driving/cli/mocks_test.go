package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/docflow/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
	"github.com/custodia-labs/docflow/internal/core/services"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// mockReporter records console output.
type mockReporter struct {
	mu    sync.Mutex
	lines []string
}

func (m *mockReporter) add(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, s)
}

func (m *mockReporter) Step(agent, message string)          { m.add(agent + ": " + message) }
func (m *mockReporter) Fail(agent, message string)          { m.add("FAIL " + agent + ": " + message) }
func (m *mockReporter) Event(title string, _ *domain.Event) { m.add("EVENT " + title) }
func (m *mockReporter) Banner(text string)                  { m.add("BANNER " + text) }
func (m *mockReporter) Section(text string)                 { m.add("SECTION " + text) }
func (m *mockReporter) Notice(text string)                  { m.add("NOTICE " + text) }

func (m *mockReporter) contains(s string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if l == s {
			return true
		}
	}
	return false
}

// mockPipeline is a mock implementation of driving.Pipeline.
type mockPipeline struct {
	outcome  *driving.Outcome
	batchErr error
	batch    []domain.RawDocument
}

func (m *mockPipeline) RunOnce(_ context.Context) (*driving.Outcome, error) {
	return m.outcome, nil
}

func (m *mockPipeline) Process(_ context.Context, _ domain.RawDocument) *driving.Outcome {
	return m.outcome
}

func (m *mockPipeline) ProcessBatch(_ context.Context, raws []domain.RawDocument) ([]*driving.Outcome, error) {
	m.batch = raws
	out := make([]*driving.Outcome, len(raws))
	for i, raw := range raws {
		ev := domain.NewEvent("01HX"+raw.Filename, raw, testTime)
		out[i] = &driving.Outcome{Event: ev}
	}
	return out, m.batchErr
}

// mockPoller is a mock implementation of driving.Poller.
type mockPoller struct {
	startErr error
	stats    driving.PollStats
	started  bool
}

func (m *mockPoller) Start(_ context.Context) error {
	m.started = true
	return m.startErr
}

func (m *mockPoller) Stop() error { return nil }

func (m *mockPoller) Stats() driving.PollStats { return m.stats }

// testHarness swaps the package-level services for the duration of a test.
type testHarness struct {
	reporter *mockReporter
	pipeline *mockPipeline
	poller   *mockPoller
	store    *memory.ConfigStore
	events   *memory.EventStore
	built    []domain.PipelineSettings
	opts     []BuildOptions
}

func setupHarness(t *testing.T) *testHarness {
	t.Helper()

	h := &testHarness{
		reporter: &mockReporter{},
		pipeline: &mockPipeline{},
		poller:   &mockPoller{stats: driving.PollStats{RunID: "run-1"}},
		store:    memory.NewConfigStore(),
		events:   memory.NewEventStore(),
	}

	oldSettings, oldEvents, oldBuilder, oldSetup := settingsService, eventService, builder, setup
	settingsService = services.NewSettingsService(h.store)
	eventService = services.NewEventService(h.events)
	setup = nil
	builder = func(settings domain.PipelineSettings, opts BuildOptions) (*Assembly, error) {
		h.built = append(h.built, settings)
		h.opts = append(h.opts, opts)
		asm := &Assembly{
			Pipeline: h.pipeline,
			Reporter: h.reporter,
			Locate: func(path string) (domain.RawDocument, error) {
				return domain.RawDocument{Filename: path, URI: "/in/" + path, MIMEType: "text/plain"}, nil
			},
		}
		if opts.Poll {
			asm.Poller = h.poller
		}
		return asm, nil
	}

	t.Cleanup(func() {
		settingsService, eventService, builder, setup = oldSettings, oldEvents, oldBuilder, oldSetup
	})
	return h
}

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
