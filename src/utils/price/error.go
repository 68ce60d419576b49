package price

import "errors"

var (
	ErrMultiplierOutOfRange = errors.New("reward multiplier must be between 0 and 10, exclusive")
	ErrOraclePrice          = errors.New("oracle didn't quote the requested token")
)
