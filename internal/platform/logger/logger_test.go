package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/quiz-api/internal/platform/logger"
)

func TestContextCarry(t *testing.T) {
	t.Parallel()

	t.Run("FromContext returns the stored logger", func(t *testing.T) {
		t.Parallel()

		stored := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), stored)

		assert.Same(t, stored, logger.FromContext(ctx))
	})

	t.Run("FromContext falls back to the default logger", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("FromContextOrDefault prefers the stored logger", func(t *testing.T) {
		t.Parallel()

		stored := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		def := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), stored)

		assert.Same(t, stored, logger.FromContextOrDefault(ctx, def))
	})

	t.Run("FromContextOrDefault falls back to the given default", func(t *testing.T) {
		t.Parallel()

		def := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))
	})

	t.Run("FromContextOrDefault tolerates a nil default", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
	})
}

func TestStructuredOutput(t *testing.T) {
	// Not parallel: logging via a handler shared with subtests.

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logger.WithLogger(context.Background(), log)

	logger.FromContext(ctx).Info("quiz created", slog.Int64("quiz_id", 7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quiz created", entry["msg"])
	assert.Equal(t, float64(7), entry["quiz_id"])
}
