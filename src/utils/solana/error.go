package solana

import "errors"

var (
	ErrInvalidKeypair        = errors.New("keypair is not a valid 64 byte ed25519 key")
	ErrInvalidAddress        = errors.New("address is not base58 of 32 bytes")
	ErrInvalidBlockhash      = errors.New("blockhash is not base58 of 32 bytes")
	ErrRpc                   = errors.New("rpc node returned an error")
	ErrInsufficientFunds     = errors.New("balance doesn't cover the payment")
	ErrCoSigner              = errors.New("co-signing service response failed validation")
	ErrMissingPaymentAddress = errors.New("payment address is not configured")
)
