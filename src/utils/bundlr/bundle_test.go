package bundlr

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/tool"
	"github.com/warp-contracts/loader/src/utils/wallet"

	"testing"
)

func TestBundleTestSuite(t *testing.T) {
	suite.Run(t, new(BundleTestSuite))
}

type BundleTestSuite struct {
	suite.Suite
	signer *Signer
}

func (s *BundleTestSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	s.signer = NewSigner(wallet.FromPrivateKey(key))
}

func (s *BundleTestSuite) signedBundle(numItems int) (bundle Bundle) {
	bundle.Items = make([]BundleItem, numItems)
	for i := range bundle.Items {
		bundle.Items[i] = BundleItem{
			Tags: Tags{Tag{Name: "Content-Type", Value: "application/octet-stream"}},
			Data: arweave.Base64String(tool.RandomString(50 + i)),
		}
		err := bundle.Items[i].Sign(s.signer)
		require.Nil(s.T(), err)
	}
	return
}

func (s *BundleTestSuite) TestLayout() {
	bundle := s.signedBundle(2)

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)
	require.Len(s.T(), data, bundle.Size())

	// Number of items, 32B little endian
	require.EqualValues(s.T(), 2, binary.LittleEndian.Uint64(data[:8]))
	require.Equal(s.T(), make([]byte, 24), data[8:32])

	// First item header: size and id
	require.EqualValues(s.T(), bundle.Items[0].Size(), binary.LittleEndian.Uint64(data[32:40]))
	require.Equal(s.T(), []byte(bundle.Items[0].Id), data[64:96])

	// Second item header
	require.EqualValues(s.T(), bundle.Items[1].Size(), binary.LittleEndian.Uint64(data[96:104]))
	require.Equal(s.T(), []byte(bundle.Items[1].Id), data[128:160])

	// First item body starts right after the headers
	require.EqualValues(s.T(), SignatureTypeArweave, binary.LittleEndian.Uint16(data[160:162]))
	require.Equal(s.T(), []byte(bundle.Items[0].Signature), data[162:162+ARWEAVE_SIGNATURE_LENGTH])
}

func (s *BundleTestSuite) TestRoundTrip() {
	bundle := s.signedBundle(3)

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)

	parsed := Bundle{}
	err = parsed.Unmarshal(data)
	require.Nil(s.T(), err)
	require.Len(s.T(), parsed.Items, 3)

	for i := range parsed.Items {
		require.Equal(s.T(), bundle.Items[i].Id, parsed.Items[i].Id)
		require.Equal(s.T(), bundle.Items[i].Data, parsed.Items[i].Data)
		require.Equal(s.T(), bundle.Items[i].Tags, parsed.Items[i].Tags)
	}
}

func (s *BundleTestSuite) TestEmptyBundle() {
	bundle := Bundle{}

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)
	require.Len(s.T(), data, BUNDLE_HEADER_SIZE)

	parsed := Bundle{}
	err = parsed.Unmarshal(data)
	require.Nil(s.T(), err)
	require.Empty(s.T(), parsed.Items)
}

func (s *BundleTestSuite) TestUnsignedItem() {
	bundle := Bundle{Items: []BundleItem{{Data: arweave.Base64String("x")}}}

	_, err := bundle.Marshal()
	require.ErrorIs(s.T(), err, ErrSignerNotSpecified)
}

func (s *BundleTestSuite) TestCorruptedSignature() {
	bundle := s.signedBundle(1)

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)

	// Flip a bit inside the first item's signature
	data[162] ^= 0x01

	parsed := Bundle{}
	err = parsed.Unmarshal(data)
	require.ErrorIs(s.T(), err, ErrItemIdMismatch)
}

func (s *BundleTestSuite) TestCorruptedHeaderId() {
	bundle := s.signedBundle(1)

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)

	// Flip a bit inside the header's id
	data[64] ^= 0x01

	parsed := Bundle{}
	err = parsed.Unmarshal(data)
	require.ErrorIs(s.T(), err, ErrItemIdMismatch)
}

func (s *BundleTestSuite) TestTruncated() {
	bundle := s.signedBundle(2)

	data, err := bundle.Marshal()
	require.Nil(s.T(), err)

	parsed := Bundle{}
	err = parsed.Unmarshal(data[:16])
	require.ErrorIs(s.T(), err, ErrNotEnoughBytesForItemCount)

	parsed = Bundle{}
	err = parsed.Unmarshal(data[:100])
	require.ErrorIs(s.T(), err, ErrNotEnoughBytesForItemHeader)

	parsed = Bundle{}
	err = parsed.Unmarshal(data[:200])
	require.ErrorIs(s.T(), err, ErrNotEnoughBytesForItemBody)
}
