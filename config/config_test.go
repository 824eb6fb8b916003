package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("ADMIN_IDS", "100, 200,300")
	t.Setenv("SUB_PRICE_STARS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token-123", cfg.Telegram.BotToken)
	assert.Equal(t, []int64{100, 200, 300}, cfg.Admin.IDs)
	assert.Equal(t, 250, cfg.Payments.SubscriptionStars)
	assert.Equal(t, 30, cfg.Payments.SubscriptionDuration)
	assert.Equal(t, "RUB", cfg.Payments.Currency)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidAdminID(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("ADMIN_IDS", "100,abc")

	_, err := Load()
	require.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "u",
		Password: "p",
		DBName:   "shop",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", cfg.GetDSN())
}
