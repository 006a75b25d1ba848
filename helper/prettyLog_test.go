package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Create PrettyHandler with custom level", func(t *testing.T) {
		var buf bytes.Buffer
		opts := PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		}

		handler := NewPrettyHandler(&buf, opts)

		assert.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	newHandler := func(level slog.Level) (*PrettyHandler, *bytes.Buffer) {
		var buf bytes.Buffer
		opts := PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: level},
		}
		return NewPrettyHandler(&buf, opts), &buf
	}

	t.Run("Prints each level with its label", func(t *testing.T) {
		levels := map[slog.Level]string{
			slog.LevelDebug: "DEBUG:",
			slog.LevelInfo:  "INFO:",
			slog.LevelWarn:  "WARN:",
			slog.LevelError: "ERROR:",
		}

		for level, label := range levels {
			handler, buf := newHandler(slog.LevelDebug)
			record := slog.NewRecord(time.Now(), level, "leveled message", 0)
			record.AddAttrs(slog.String("key", "value"))

			err := handler.Handle(ctx, record)

			require.NoError(t, err, "Expected Handle to not return an error")
			output := buf.String()
			assert.Contains(t, output, label, "Expected output to contain the level label")
			assert.Contains(t, output, "leveled message", "Expected output to contain the message")
			assert.Contains(t, output, "key", "Expected output to contain the attribute key")
			assert.Contains(t, output, "value", "Expected output to contain the attribute value")
		}
	})

	t.Run("Attributes are rendered as JSON", func(t *testing.T) {
		handler, buf := newHandler(slog.LevelInfo)
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "multi-attr message", 0)
		record.AddAttrs(
			slog.String("name", "test"),
			slog.Int("id", 123),
			slog.Bool("active", true),
		)

		err := handler.Handle(ctx, record)

		require.NoError(t, err, "Expected Handle to not return an error")
		output := buf.String()
		assert.Contains(t, output, `"name":"test"`, "Expected output to contain the string attribute")
		assert.Contains(t, output, `"id":123`, "Expected output to contain the int attribute")
		assert.Contains(t, output, `"active":true`, "Expected output to contain the bool attribute")
	})

	t.Run("No attributes renders an empty JSON object", func(t *testing.T) {
		handler, buf := newHandler(slog.LevelInfo)
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "simple message", 0)

		err := handler.Handle(ctx, record)

		require.NoError(t, err, "Expected Handle to not return an error")
		assert.Contains(t, buf.String(), "{}", "Expected output to contain empty JSON object for attributes")
	})

	t.Run("Timestamp is formatted as [HH:MM:SS.mmm]", func(t *testing.T) {
		handler, buf := newHandler(slog.LevelInfo)
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "time test", 0)

		err := handler.Handle(ctx, record)

		require.NoError(t, err, "Expected Handle to not return an error")
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String(),
			"Expected output to contain properly formatted timestamp")
	})
}
