package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	// Set required environment variables for test
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	os.Setenv("DATABASE_HOST", "localhost")
	os.Setenv("DATABASE_NAME", "gastrobot_test")
	os.Setenv("KAFKA_BROKERS", "localhost:9093")
	os.Setenv("ADMIN_IDS", "1001")
	defer func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("DATABASE_HOST")
		os.Unsetenv("DATABASE_NAME")
		os.Unsetenv("KAFKA_BROKERS")
		os.Unsetenv("ADMIN_IDS")
	}()

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}
