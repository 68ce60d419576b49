package solana

import (
	"crypto/ed25519"
	"encoding/json"
	"os"

	"github.com/btcsuite/btcutil/base58"
)

// Keypair is an ed25519 key in the layout the Solana CLI writes to
// id.json: 64 bytes, seed followed by the public key
type Keypair struct {
	private ed25519.PrivateKey
}

func KeypairFromBytes(raw []byte) (self *Keypair, err error) {
	if len(raw) != ed25519.PrivateKeySize {
		err = ErrInvalidKeypair
		return
	}

	private := ed25519.PrivateKey(raw)

	// The stored public half must match the seed
	derived := ed25519.NewKeyFromSeed(private.Seed())
	if !private.Equal(derived) {
		err = ErrInvalidKeypair
		return
	}

	self = &Keypair{private: private}
	return
}

func KeypairFromPath(path string) (self *Keypair, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	// id.json is a JSON array of byte values
	var ints []int
	err = json.Unmarshal(data, &ints)
	if err != nil {
		err = ErrInvalidKeypair
		return
	}

	raw := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			err = ErrInvalidKeypair
			return
		}
		raw[i] = byte(v)
	}

	return KeypairFromBytes(raw)
}

func (self *Keypair) PublicKey() []byte {
	return self.private[ed25519.SeedSize:]
}

// Address is the base58 form of the public key
func (self *Keypair) Address() string {
	return base58.Encode(self.PublicKey())
}

func (self *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(self.private, message)
}
