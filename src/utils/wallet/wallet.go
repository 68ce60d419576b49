package wallet

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"os"

	"github.com/warp-contracts/loader/src/utils/arweave"

	"github.com/dvsekhvalnov/jose2go/base64url"
	"github.com/lestrrat-go/jwx/jwk"
)

var (
	ErrTooManyKeys = errors.New("too many keys in the wallet")
	ErrNoKey       = errors.New("cannot access key in JWK")
	ErrNotRsaKey   = errors.New("key is not an RSA private key")
)

// Wallet signs transactions and data items with an RSA-4096 key
// loaded from the JWK file the mining tools generate.
type Wallet struct {
	PrivateKey *rsa.PrivateKey
	PubKey     *rsa.PublicKey
}

func FromPath(path string) (self *Wallet, err error) {
	/* #nosec */
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	return FromJWK(content)
}

func FromJWK(privateKeyJWK []byte) (self *Wallet, err error) {
	self = new(Wallet)

	set, err := jwk.Parse(privateKeyJWK)
	if err != nil {
		return
	}
	if set.Len() != 1 {
		err = ErrTooManyKeys
		return
	}

	key, ok := set.Get(0)
	if !ok {
		err = ErrNoKey
		return
	}

	var rawkey interface{}
	err = key.Raw(&rawkey)
	if err != nil {
		return
	}

	self.PrivateKey, ok = rawkey.(*rsa.PrivateKey)
	if !ok {
		err = ErrNotRsaKey
		return
	}
	self.PubKey = &self.PrivateKey.PublicKey

	return
}

func FromPrivateKey(key *rsa.PrivateKey) (self *Wallet) {
	self = new(Wallet)
	self.PrivateKey = key
	self.PubKey = &key.PublicKey
	return
}

// Owner is the public modulus, 512 bytes for a 4096 bit key
func (self *Wallet) Owner() arweave.Base64String {
	return arweave.Base64String(self.PubKey.N.Bytes())
}

func (self *Wallet) PubKeyLength() int {
	return self.PubKey.Size()
}

// Address of the wallet, the base64url encoded hash of the public modulus
func (self *Wallet) Address() string {
	addr := sha256.Sum256(self.PubKey.N.Bytes())
	return base64url.Encode(addr[:])
}

// Sign signs a 32 byte digest with RSA-PSS
func (self *Wallet) Sign(digest []byte) (out []byte, err error) {
	return rsa.SignPSS(rand.Reader, self.PrivateKey, crypto.SHA256, digest, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}

func (self *Wallet) Verify(digest []byte, signature []byte) (err error) {
	return rsa.VerifyPSS(self.PubKey, crypto.SHA256, digest, signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
}

func Hash256(data []byte) []byte {
	out := sha256.Sum256(data)
	return out[:]
}

func Hash384(data []byte) []byte {
	out := sha512.Sum384(data)
	return out[:]
}
