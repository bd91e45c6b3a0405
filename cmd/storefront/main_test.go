package main

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/app"
)

func TestSetupLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	cfg := app.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	require.NoError(t, setupLogger(cfg))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	cfg.LogLevel = ""
	cfg.LogFormat = ""
	require.NoError(t, setupLogger(cfg))
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
}

func TestSetupLogger_Invalid(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.LogLevel = "loud"
	require.Error(t, setupLogger(cfg))

	cfg = app.DefaultConfig()
	cfg.LogFormat = "xml"
	require.Error(t, setupLogger(cfg))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "sqlite")

	err := run(context.Background())
	require.ErrorContains(t, err, "unsupported storage driver")
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("STOREFRONT_GRPC_ADDR", "127.0.0.1:0")
	t.Setenv("STOREFRONT_METRICS_ADDR", "127.0.0.1:0")
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")
	defer log.SetLevel(log.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx))
}
