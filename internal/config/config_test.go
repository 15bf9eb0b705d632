package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaultsAndOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("REPORT_TOP_N", "7")
	t.Setenv("WAREHOUSE_HEALTH_TABLE", "aurora_inventory.main.stock_health")
	t.Setenv("AI_TIMEOUT_SECONDS", "3")

	setDefaults()
	viper.AutomaticEnv()
	cfg := fromViper()

	assert.Equal(t, 7, cfg.Report.TopN)
	assert.Equal(t, 30, cfg.Report.PromptLimit)
	assert.Equal(t, "aurora_inventory.main.stock_health", cfg.Warehouse.HealthTable)
	assert.Equal(t, "daily_stock", cfg.Warehouse.StockTable)
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}
