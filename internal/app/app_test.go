package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/lightbnb/internal/config"
)

func TestCleanupStack_RunsInReverseOrderOnce(t *testing.T) {
	var calls []string
	var s cleanupStack
	s.push(func() { calls = append(calls, "tracer") })
	s.push(func() { calls = append(calls, "pool") })
	s.push(func() { calls = append(calls, "kafka") })

	s.run()
	s.run()

	assert.Equal(t, []string{"kafka", "pool", "tracer"}, calls)
}

func TestCleanupStack_Empty(t *testing.T) {
	var s cleanupStack
	assert.NotPanics(t, s.run)
}

func TestNewApp_UnreachableDatabase(t *testing.T) {
	cfg := &config.Config{
		Environment:           "development",
		HTTPPort:              3000,
		PostgresHost:          "127.0.0.1",
		PostgresPort:          1,
		PostgresUser:          "vagrant",
		PostgresPass:          "123",
		PostgresDB:            "lightbnb",
		PostgresSSL:           "disable",
		DBMaxConns:            2,
		DBMinConns:            0,
		DBMaxConnLifetimeMins: 1,
		DBMaxConnIdleTimeMins: 1,
		PropertyStore:         config.StorePostgres,
		DefaultSearchLimit:    20,
		JWTSecret:             "secret",
		JWTExpiry:             time.Hour,
		KafkaBrokers:          []string{"127.0.0.1:1"},
	}

	app, err := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "connect to postgres")
}
