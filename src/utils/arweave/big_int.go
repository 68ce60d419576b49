package arweave

import (
	"encoding/json"
	"errors"
	"math/big"
)

// Winston amounts and byte sizes are decimal strings on the wire,
// but the API sometimes returns plain numbers, so both are accepted.
type BigInt struct {
	big.Int
	Valid bool
}

func BigIntFromInt64(v int64) BigInt {
	return BigInt{*big.NewInt(v), true}
}

func BigIntFromBig(v *big.Int) BigInt {
	if v == nil {
		return BigInt{}
	}
	return BigInt{*v, true}
}

func (self *BigInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty big int")
	}

	if data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		_, ok := self.SetString(s, 10)
		if !ok {
			return errors.New("failed to parse big int")
		}
		self.Valid = true
		return nil
	}

	_, ok := self.SetString(string(data), 10)
	if !ok {
		return errors.New("failed to parse big int")
	}
	self.Valid = true
	return nil
}

func (self BigInt) MarshalJSON() (out []byte, err error) {
	return json.Marshal(self.String())
}
