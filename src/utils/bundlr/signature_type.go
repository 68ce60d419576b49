package bundlr

import "strconv"

type SignatureType int

// Only the Arweave RSA-PSS scheme is accepted, other ANS-104
// signature types fail the parse
const (
	SignatureTypeArweave SignatureType = 1
)

func (self SignatureType) Bytes() []byte {
	return []byte(strconv.Itoa(int(self)))
}
