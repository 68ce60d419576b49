package bundlr

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/tool"
	"github.com/warp-contracts/loader/src/utils/wallet"

	"testing"
)

func TestBundleItemTestSuite(t *testing.T) {
	suite.Run(t, new(BundleItemTestSuite))
}

type BundleItemTestSuite struct {
	suite.Suite
	signer *Signer
}

func (s *BundleItemTestSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	s.signer = NewSigner(wallet.FromPrivateKey(key))
}

func (s *BundleItemTestSuite) TestSerialization() {
	item := BundleItem{
		SignatureType: SignatureTypeArweave,
		Target:        arweave.Base64String(tool.RandomString(32)),
		Anchor:        arweave.Base64String(tool.RandomString(32)),
		Tags:          Tags{Tag{Name: "1", Value: "2"}, Tag{Name: "3", Value: "4"}},
		Data:          arweave.Base64String(tool.RandomString(100)),
	}

	buf, err := item.Reader(s.signer)
	require.Nil(s.T(), err)
	require.NotNil(s.T(), buf)

	reader := bytes.NewReader(buf.Bytes())
	parsed := BundleItem{}

	err = parsed.UnmarshalFromReader(reader)
	require.Nil(s.T(), err)
	require.Equal(s.T(), item.SignatureType, parsed.SignatureType)
	require.Equal(s.T(), item.Data, parsed.Data)
	require.Equal(s.T(), item.Tags, parsed.Tags)
	require.Equal(s.T(), item.Target, parsed.Target)
	require.Equal(s.T(), item.Anchor, parsed.Anchor)
	require.Equal(s.T(), item.Owner, parsed.Owner)
	require.Equal(s.T(), item.Signature, parsed.Signature)
}

func (s *BundleItemTestSuite) TestSerializationNoOptionalFields() {
	item := BundleItem{
		SignatureType: SignatureTypeArweave,
		Tags:          Tags{Tag{Name: "Content-Type", Value: "text/plain"}},
		Data:          arweave.Base64String(tool.RandomString(100)),
	}

	buf, err := item.Reader(s.signer)
	require.Nil(s.T(), err)

	parsed := BundleItem{}
	err = parsed.Unmarshal(buf.Bytes())
	require.Nil(s.T(), err)
	require.Empty(s.T(), parsed.Target)
	require.Empty(s.T(), parsed.Anchor)
	require.Equal(s.T(), item.Data, parsed.Data)
}

func (s *BundleItemTestSuite) TestSignAndVerify() {
	item := BundleItem{
		Tags: Tags{Tag{Name: "App", Value: "loader"}},
		Data: arweave.Base64String(tool.RandomString(1000)),
	}

	err := item.Sign(s.signer)
	require.Nil(s.T(), err)
	require.Len(s.T(), []byte(item.Signature), 512)
	require.Len(s.T(), []byte(item.Owner), 512)
	require.Len(s.T(), []byte(item.Id), 32)

	err = item.Verify()
	require.Nil(s.T(), err)

	// Tampered data no longer matches the signature
	item.Data = arweave.Base64String(tool.RandomString(1000))
	item.tagsBytes = nil
	err = item.Verify()
	require.NotNil(s.T(), err)
}

func (s *BundleItemTestSuite) TestTamperedSignature() {
	item := BundleItem{
		Data: arweave.Base64String(tool.RandomString(100)),
	}

	err := item.Sign(s.signer)
	require.Nil(s.T(), err)

	sig := []byte(item.Signature)
	sig[0] ^= 0xFF
	item.Signature = sig

	err = item.Verify()
	require.ErrorIs(s.T(), err, ErrVerifyIdSignatureMismatch)
}

func (s *BundleItemTestSuite) TestUnsupportedSignatureType() {
	item := BundleItem{
		SignatureType: SignatureType(3),
	}

	buf := bytes.NewBuffer(nil)
	buf.Write(ShortTo2ByteArray(3))
	buf.Write(make([]byte, 100))

	parsed := BundleItem{}
	err := parsed.Unmarshal(buf.Bytes())
	require.ErrorIs(s.T(), err, ErrUnsupportedSignatureType)
	require.Less(s.T(), item.Size(), 0)
}

func (s *BundleItemTestSuite) TestTruncatedInput() {
	item := BundleItem{
		Data: arweave.Base64String(tool.RandomString(100)),
	}

	buf, err := item.Reader(s.signer)
	require.Nil(s.T(), err)

	parsed := BundleItem{}
	err = parsed.Unmarshal(buf.Bytes()[:700])
	require.ErrorIs(s.T(), err, ErrNotEnoughBytesForOwner)

	parsed = BundleItem{}
	err = parsed.Unmarshal(buf.Bytes()[:1])
	require.ErrorIs(s.T(), err, ErrNotEnoughBytesForSignatureType)
}

func (s *BundleItemTestSuite) TestTagLimit() {
	buf := bytes.NewBuffer(nil)
	buf.Write(ShortTo2ByteArray(int(SignatureTypeArweave)))
	buf.Write(make([]byte, ARWEAVE_SIGNATURE_LENGTH))
	buf.Write(make([]byte, ARWEAVE_OWNER_LENGTH))
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.Write(LongTo8ByteArray(1))
	buf.Write(LongTo8ByteArray(MAX_TAG_BYTES + 1))

	parsed := BundleItem{}
	err := parsed.Unmarshal(buf.Bytes())
	require.ErrorIs(s.T(), err, ErrTagsTooLong)
}

func (s *BundleItemTestSuite) TestMarshalTo() {
	item := BundleItem{
		Tags: Tags{Tag{Name: "1", Value: "2"}},
		Data: arweave.Base64String(tool.RandomString(10)),
	}

	err := item.Sign(s.signer)
	require.Nil(s.T(), err)

	small := make([]byte, 10)
	_, err = item.MarshalTo(small)
	require.ErrorIs(s.T(), err, ErrBufferTooSmall)

	buf := make([]byte, item.Size())
	n, err := item.MarshalTo(buf)
	require.Nil(s.T(), err)
	require.Equal(s.T(), item.Size(), n)

	reader, err := item.Reader(nil)
	require.Nil(s.T(), err)
	require.Equal(s.T(), reader.Bytes(), buf[:n])
}
