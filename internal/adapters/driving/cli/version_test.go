package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docflow/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docflow/internal/core/services"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release", version: "1.4.2", want: "docflow version 1.4.2\n"},
		{name: "dev build", version: "dev", want: "docflow version dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHarness(t)
			old := version
			version = tt.version
			t.Cleanup(func() { version = old })

			out, err := execute(t, "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestExecute_RunsSetupAndClose(t *testing.T) {
	setupHarness(t)
	oldVersion := version
	t.Cleanup(func() { version = oldVersion })

	var gotDir string
	closed := 0
	fn := func(dir string) (*Services, error) {
		gotDir = dir
		return &Services{
			Settings: services.NewSettingsService(memory.NewConfigStore()),
			Events:   services.NewEventService(nil),
			Close: func() error {
				closed++
				return nil
			},
		}, nil
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config-dir", "/tmp/docflow-test", "version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute(context.Background(), fn, "9.9.9")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/docflow-test", gotDir)
	assert.Equal(t, "9.9.9", version)
	assert.Equal(t, 1, closed, "close runs exactly once")
}

func TestExecute_SetupError(t *testing.T) {
	setupHarness(t)

	fn := func(string) (*Services, error) {
		return nil, errors.New("config unreadable")
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute(context.Background(), fn, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialise services: config unreadable")
}
