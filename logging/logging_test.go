package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	require.NotNil(t, log)

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "nonsense")

	log.Info().Msg("info message")
	assert.Contains(t, buf.String(), "info message")
}

func TestSubTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").Sub("composer")

	log.Info().Msg("tagged")

	out := buf.String()
	assert.Contains(t, out, "tagged")
	assert.Contains(t, out, "composer")
}
