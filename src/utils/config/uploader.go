package config

import (
	"time"

	"github.com/spf13/viper"
)

type Uploader struct {
	// Path to the wallet file with the RSA key in JWK format
	KeyPairPath string

	// Directory where upload statuses are journaled.
	// Empty means no journaling
	LogDir string

	// Number of workers uploading files concurrently
	NumWorkers int

	// Factor applied to the network price quote, (0, 10)
	RewardMultiplier float64

	// How many statuses get written to disk in one batch
	StatusBatchSize int

	// Interval between flushing buffered statuses
	StatusFlushInterval time.Duration

	// Retrying failed status writes and status polls
	RetryMaxElapsedTime time.Duration
	RetryMaxInterval    time.Duration
}

func setUploaderDefaults() {
	viper.SetDefault("Uploader.KeyPairPath", "")
	viper.SetDefault("Uploader.LogDir", "")
	viper.SetDefault("Uploader.NumWorkers", "5")
	viper.SetDefault("Uploader.RewardMultiplier", "1.0")
	viper.SetDefault("Uploader.StatusBatchSize", "50")
	viper.SetDefault("Uploader.StatusFlushInterval", "1s")
	viper.SetDefault("Uploader.RetryMaxElapsedTime", "2m")
	viper.SetDefault("Uploader.RetryMaxInterval", "15s")
}
