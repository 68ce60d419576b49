package config

import (
	"github.com/spf13/viper"
)

type Bundle struct {
	// Files are packed into one bundle until their combined size passes this limit
	MaxSizeBytes int64

	// Hard cap on the number of items in one bundle
	MaxItems int

	// Content-Type tag gets detected from the file body when enabled
	SniffContentType bool
}

func setBundleDefaults() {
	viper.SetDefault("Bundle.MaxSizeBytes", "10000000")
	viper.SetDefault("Bundle.MaxItems", "1000")
	viper.SetDefault("Bundle.SniffContentType", "true")
}
