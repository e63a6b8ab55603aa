package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter(t *testing.T) {
	t.Cleanup(func() { _ = InitWithWriter("warn", &bytes.Buffer{}) })

	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("debug", &buf))

	Get().Debugw("query failed", "query", "shortlog")
	Trace("CollectContributorStats", time.Now())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "query failed")
	assert.Contains(t, out, "shortlog")
	assert.Contains(t, out, "CollectContributorStats executed in")
}

func TestInitWithWriter_LevelFilters(t *testing.T) {
	t.Cleanup(func() { _ = InitWithWriter("warn", &bytes.Buffer{}) })

	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("warn", &buf))
	Get().Info("hidden")
	Get().Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInit_InvalidLevel(t *testing.T) {
	assert.Error(t, Init("loud"))
}
