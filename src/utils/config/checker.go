package config

import (
	"time"

	"github.com/spf13/viper"
)

type Checker struct {
	// Number of workers querying transaction statuses concurrently
	WorkerPoolSize int

	// How many updated statuses get written to disk in one batch
	StatusBatchSize int

	// Interval between flushing buffered statuses
	StatusFlushInterval time.Duration
}

func setCheckerDefaults() {
	viper.SetDefault("Checker.WorkerPoolSize", "10")
	viper.SetDefault("Checker.StatusBatchSize", "50")
	viper.SetDefault("Checker.StatusFlushInterval", "1s")
}
