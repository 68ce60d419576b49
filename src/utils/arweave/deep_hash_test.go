package arweave

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestDeepHashTestSuite(t *testing.T) {
	suite.Run(t, new(DeepHashTestSuite))
}

type DeepHashTestSuite struct {
	suite.Suite
}

func (s *DeepHashTestSuite) TestDeterministic() {
	values := []any{"2", []byte("owner"), Base64String("target")}
	require.Equal(s.T(), DeepHash(values), DeepHash(values))
}

func (s *DeepHashTestSuite) TestBlobKindsAgree() {
	// A string, a byte slice and a Base64String with the same
	// content are the same blob
	a := DeepHash([]any{"tasty"})
	b := DeepHash([]any{[]byte("tasty")})
	c := DeepHash([]any{Base64String("tasty")})
	require.Equal(s.T(), a, b)
	require.Equal(s.T(), a, c)
}

func (s *DeepHashTestSuite) TestConcatenationDoesNotCollide() {
	a := DeepHash([]any{[]byte("ab"), []byte("c")})
	b := DeepHash([]any{[]byte("a"), []byte("bc")})
	c := DeepHash([]any{[]byte("abc")})
	require.NotEqual(s.T(), a, b)
	require.NotEqual(s.T(), a, c)
	require.NotEqual(s.T(), b, c)
}

func (s *DeepHashTestSuite) TestNestingMatters() {
	flat := DeepHash([]any{"a", "b"})
	nested := DeepHash([]any{[]any{"a", "b"}})
	require.NotEqual(s.T(), flat, nested)
}

func (s *DeepHashTestSuite) TestEmptyBlobVsEmptyList() {
	blob := DeepHash([]any{[]byte{}})
	list := DeepHash([]any{[]any{}})
	require.NotEqual(s.T(), blob, list)
}

func (s *DeepHashTestSuite) TestBase64StringSliceIsAList() {
	a := DeepHash([]any{[]Base64String{Base64String("x"), Base64String("y")}})
	b := DeepHash([]any{[]any{[]byte("x"), []byte("y")}})
	require.Equal(s.T(), a, b)
}

func (s *DeepHashTestSuite) TestLengthChangesTag() {
	// Same fold input, different list length tag
	a := DeepHash([]any{})
	b := DeepHash([]any{[]any{}})
	require.NotEqual(s.T(), a, b)
}
