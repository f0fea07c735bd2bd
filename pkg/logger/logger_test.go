package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/environment"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Run("defaults to json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("static attributes and level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevel(slog.LevelWarn),
			logger.WithAttr(slog.String("svc", "test")),
		)
		log.Info("skipped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), `"svc":"test"`)
	})

	t.Run("context extractors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("trace", v), ok
			}),
		)

		log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "abc"), "with")
		assert.Contains(t, buf.String(), `"trace":"abc"`)

		buf.Reset()
		log.InfoContext(context.Background(), "without")
		assert.NotContains(t, buf.String(), "trace")
	})
}

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		env       environment.Environment
		wantJSON  bool
		wantDebug bool
		wantEnv   string
	}{
		{environment.Development, false, true, "development"},
		{environment.Staging, true, false, "staging"},
		{environment.Production, true, false, "production"},
		{"", false, true, "development"},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+string(tt.env), func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "storefront"))
			log.Debug("ping")

			if !tt.wantDebug {
				assert.Empty(t, buf.String())
				log.Info("ping")
			}

			out := buf.String()
			if tt.wantJSON {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "storefront", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
			} else {
				assert.Contains(t, out, "service=storefront")
				assert.Contains(t, out, "env="+tt.wantEnv)
			}
		})
	}
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name string
		got  slog.Attr
		want slog.Attr
	}{
		{"nil error", logger.Error(nil), slog.Attr{}},
		{"empty request id", logger.RequestID(""), slog.Attr{}},
		{"request id", logger.RequestID("r1"), slog.String("request_id", "r1")},
		{"form", logger.Form("booking"), slog.String("form", "booking")},
		{"field", logger.Field("email"), slog.String("field", "email")},
		{"submission", logger.SubmissionID("s1"), slog.String("submission_id", "s1")},
		{"empty client ip", logger.ClientIP(""), slog.Attr{}},
		{"lang", logger.Lang("pt-BR"), slog.String("lang", "pt-BR")},
		{"duration", logger.Duration(1500 * time.Millisecond), slog.Int64("duration_ms", 1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Equal(tt.want), "got %v want %v", tt.got, tt.want)
		})
	}

	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, "fields", logger.Fields([]string{"a"}).Key)
}
