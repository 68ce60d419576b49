package bundlr

import (
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/wallet"
)

// Signer produces data item signatures with the wallet's RSA key
type Signer struct {
	Wallet *wallet.Wallet
}

func NewSigner(wallet *wallet.Wallet) (self *Signer) {
	self = new(Signer)
	self.Wallet = wallet
	return
}

func (self *Signer) GetType() SignatureType {
	return SignatureTypeArweave
}

func (self *Signer) GetOwner() arweave.Base64String {
	return self.Wallet.Owner()
}

func (self *Signer) Sign(digest []byte) ([]byte, error) {
	return self.Wallet.Sign(digest)
}
