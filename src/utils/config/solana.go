package config

import (
	"time"

	"github.com/spf13/viper"
)

type Solana struct {
	// Path to the id.json file with the ed25519 keypair
	KeyPairPath string

	// JSON-RPC node
	RpcUrl string

	// Service co-signing uploads paid in SOL
	CoSignerUrl string

	// Deposit address of the co-signing service
	PaymentAddress string

	RequestTimeout time.Duration
}

func setSolanaDefaults() {
	viper.SetDefault("Solana.KeyPairPath", "")
	viper.SetDefault("Solana.RpcUrl", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("Solana.CoSignerUrl", "https://cosigner.warp.cc")
	viper.SetDefault("Solana.PaymentAddress", "")
	viper.SetDefault("Solana.RequestTimeout", "30s")
}
