package config

import (
	"time"

	"github.com/spf13/viper"
)

type PriceOracle struct {
	// Spot price endpoint, coingecko compatible
	Url string

	// How long quotes are served from the cache
	CacheTTL time.Duration

	RequestTimeout time.Duration
}

func setPriceOracleDefaults() {
	viper.SetDefault("PriceOracle.Url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("PriceOracle.CacheTTL", "10m")
	viper.SetDefault("PriceOracle.RequestTimeout", "15s")
}
