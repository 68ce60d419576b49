package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config stores global configuration
type Config struct {
	// Is development mode on
	IsDevelopment bool

	// REST API address. API used for monitoring long uploads. Empty disables the server
	RESTListenAddress string

	// Maximum time the loader will be closing before stop is forced.
	StopTimeout time.Duration

	// Logging level
	LogLevel string

	Arweave     Arweave
	Uploader    Uploader
	Bundle      Bundle
	Checker     Checker
	Solana      Solana
	PriceOracle PriceOracle
}

func setDefaults() {
	viper.SetDefault("IsDevelopment", "false")
	viper.SetDefault("RESTListenAddress", "")
	viper.SetDefault("LogLevel", "INFO")
	viper.SetDefault("StopTimeout", "30s")

	setArweaveDefaults()
	setUploaderDefaults()
	setBundleDefaults()
	setCheckerDefaults()
	setSolanaDefaults()
	setPriceOracleDefaults()
}

func Default() (config *Config) {
	config, _ = Load("")
	return
}

func BindEnv(path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		// Base types
		key := strings.Join(path, ".")

		env := "LOADER_" + strcase.ToScreamingSnake(strings.Join(path, "_"))
		err := viper.BindEnv(key, env)
		if err != nil {
			panic(err)
		}
	} else {
		// Iterates over struct fields
		for i := 0; i < val.NumField(); i++ {
			newPath := make([]string, len(path))
			copy(newPath, path)
			newPath = append(newPath, val.Type().Field(i).Name)
			BindEnv(newPath, val.Field(i))
		}
	}
}

// Extra env names that follow the wallet tooling conventions
func bindGlobalEnv() {
	for key, env := range map[string]string{
		"Arweave.NodeUrl":      "AR_BASE_URL",
		"Uploader.KeyPairPath": "AR_KEYPAIR_PATH",
		"Solana.KeyPairPath":   "SOL_KEYPAIR_PATH",
	} {
		err := viper.BindEnv(key, env)
		if err != nil {
			panic(err)
		}
	}
}

// Load configuration from file and env
func Load(filename string) (config *Config, err error) {
	viper.SetConfigType("json")

	setDefaults()

	// Visits every field and registers upper snake case ENV name for it
	// Works with embedded structs
	BindEnv([]string{}, reflect.ValueOf(Config{}))
	bindGlobalEnv()

	// Empty filename means we use default values
	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = viper.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = viper.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, err
	}

	return
}
