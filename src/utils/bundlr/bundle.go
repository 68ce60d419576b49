package bundlr

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/warp-contracts/loader/src/utils/tool"
)

// Binary bundle of data items, v2.0.0.
// https://github.com/ArweaveTeam/arweave-standards/blob/master/ans/ANS-104.md
type Bundle struct {
	Items []BundleItem `json:"items"`
}

const BUNDLE_HEADER_SIZE = 32
const BUNDLE_ITEM_HEADER_SIZE = 64

// Number of items and every item size are 32B little endian values,
// but only 8 bytes carry data
func longTo32ByteArray(long int) (out []byte) {
	out = make([]byte, 32)
	copy(out, LongTo8ByteArray(long))
	return
}

func (self *Bundle) Size() (out int) {
	out = BUNDLE_HEADER_SIZE + len(self.Items)*BUNDLE_ITEM_HEADER_SIZE
	for i := range self.Items {
		size := self.Items[i].Size()
		if size < 0 {
			return -1
		}
		out += size
	}
	return
}

// Serializes the bundle. Items have to be signed beforehand.
func (self *Bundle) Marshal() (out []byte, err error) {
	buf := bytes.NewBuffer(make([]byte, 0, tool.Max(BUNDLE_HEADER_SIZE, self.Size())))

	// Number of items
	buf.Write(longTo32ByteArray(len(self.Items)))

	// Headers: size and id of each item
	for i := range self.Items {
		if len(self.Items[i].Id) == 0 {
			err = ErrSignerNotSpecified
			return
		}
		buf.Write(longTo32ByteArray(self.Items[i].Size()))
		buf.Write(self.Items[i].Id)
	}

	// Item bodies
	for i := range self.Items {
		err = self.Items[i].Encode(nil, buf)
		if err != nil {
			return
		}
	}

	out = buf.Bytes()
	return
}

func (self *Bundle) Unmarshal(data []byte) (err error) {
	return self.UnmarshalFromReader(bytes.NewReader(data))
}

// Reverse operation of Marshal. Every contained item is verified,
// parsing fails upon the first bad one.
func (self *Bundle) UnmarshalFromReader(reader io.Reader) (err error) {
	countBuffer := make([]byte, BUNDLE_HEADER_SIZE)
	_, err = io.ReadFull(reader, countBuffer)
	if err != nil {
		err = ErrNotEnoughBytesForItemCount
		return
	}
	numItems := ByteArrayToLong(countBuffer[:8])

	sizes := make([]int, numItems)
	ids := make([][]byte, numItems)
	for i := 0; i < numItems; i++ {
		header := make([]byte, BUNDLE_ITEM_HEADER_SIZE)
		_, err = io.ReadFull(reader, header)
		if err != nil {
			err = ErrNotEnoughBytesForItemHeader
			return
		}
		sizes[i] = ByteArrayToLong(header[:8])
		ids[i] = header[32:]
	}

	self.Items = make([]BundleItem, numItems)
	for i := 0; i < numItems; i++ {
		body := make([]byte, sizes[i])
		_, err = io.ReadFull(reader, body)
		if err != nil {
			err = ErrNotEnoughBytesForItemBody
			return
		}

		err = self.Items[i].Unmarshal(body)
		if err != nil {
			return
		}

		// Id isn't part of the body, it's derived from the signature.
		// It has to match the one from the header.
		idArray := sha256.Sum256(self.Items[i].Signature)
		if !bytes.Equal(idArray[:], ids[i]) {
			err = ErrItemIdMismatch
			return
		}
		self.Items[i].Id = ids[i]

		err = self.Items[i].Verify()
		if err != nil {
			return
		}
	}

	return
}
