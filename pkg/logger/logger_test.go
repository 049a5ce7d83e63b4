package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/pkg/environment"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
)

type reqIDKey struct{}

func getReqID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey{}).(string)
	return id
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew_JSONWithAttrsAndExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithAttr(logger.Component("test")),
		logger.WithContextExtractors(logger.RequestIDExtractor(getReqID)),
	)

	ctx := context.WithValue(context.Background(), reqIDKey{}, "req-1")
	log.InfoContext(ctx, "hello", logger.MessageKey("fortune.3"), logger.Locale("en"))

	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "fortune.3", rec["message_key"])
	assert.Equal(t, "en", rec["locale"])
}

func TestNew_ExtractorSkipsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(logger.RequestIDExtractor(getReqID)))
	log.Info("no id")

	rec := decode(t, &buf)
	_, ok := rec["request_id"]
	assert.False(t, ok)
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(environment.Production, "fortuned"))
	log.Debug("dropped")
	assert.Zero(t, buf.Len())

	log.Info("kept")
	rec := decode(t, &buf)
	assert.Equal(t, "fortuned", rec["service"])
	assert.Equal(t, "production", rec["env"])
}

func TestWithEnvironment_DevelopmentIsText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(environment.Development, ""))
	log.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithConfig(logger.Config{Level: "error", Format: logger.FormatText}))
	log.Warn("dropped")
	assert.Zero(t, buf.Len())
	log.Error("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestWithFormat_InvalidPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	lvl, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = logger.ParseLevel("nope")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "/p", logger.Path("/p").Value.String())
	assert.Equal(t, "started", logger.Event("started").Value.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { logger.Discard().Info("x") })
}

func TestLocaleExtractor(t *testing.T) {
	t.Parallel()

	type localeKey struct{}
	get := func(ctx context.Context) (string, bool) {
		l, ok := ctx.Value(localeKey{}).(string)
		return l, ok
	}

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(nil, logger.LocaleExtractor(get)))

	log.InfoContext(context.WithValue(context.Background(), localeKey{}, "ko"), "with locale")
	assert.Equal(t, "ko", decode(t, &buf)["locale"])

	buf.Reset()
	log.Info("without locale")
	_, ok := decode(t, &buf)["locale"]
	assert.False(t, ok)
}
