package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docflow/internal/core/domain"
)

func TestConfigCmd_Show(t *testing.T) {
	setupHarness(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Intake directory: documents_to_process")
	assert.Contains(t, out, "Processed directory: processed_documents")
	assert.Contains(t, out, "Poll interval: 5s")
	assert.Contains(t, out, "Rate limit: 5/s (burst 5)")
	assert.Contains(t, out, "Latency: on")
	assert.Contains(t, out, "pipeline.intake_dir")
}

func TestConfigCmd_Set(t *testing.T) {
	h := setupHarness(t)

	out, err := execute(t, "config", "set", "pipeline.poll_interval", "2s")

	require.NoError(t, err)
	assert.Contains(t, out, "pipeline.poll_interval = 2s")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, settings.PollInterval)
	assert.NotEmpty(t, h.store.Snapshot())
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	setupHarness(t)

	_, err := execute(t, "config", "set", "pipeline.workers", "0")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_SetRequiresTwoArgs(t *testing.T) {
	setupHarness(t)

	_, err := execute(t, "config", "set", "pipeline.workers")
	assert.Error(t, err)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "unlimited", formatRate(domain.ProviderSettings{}))
	assert.Equal(t, "2.5/s (burst 3)", formatRate(domain.ProviderSettings{RateLimit: 2.5, Burst: 3}))
}
