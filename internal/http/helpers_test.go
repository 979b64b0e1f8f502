package httpx

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := NewRenderer(testLogger())
	require.NoError(t, err)
	return rn
}
