package arweave

import (
	"crypto/sha512"
	"strconv"
)

// DeepHash computes the 48 byte digest used for signing transactions and
// data items. Blobs are hashed with a "blob<len>" tag, lists fold the
// hashes of their children onto a "list<len>" tag.
// https://github.com/ArweaveTeam/arweave-js/blob/master/src/common/lib/deepHash.ts
func DeepHash(data []any) [48]byte {
	tag := append([]byte("list"), []byte(strconv.Itoa(len(data)))...)
	tagHash := sha512.Sum384(tag)
	return deepHashChunks(data, tagHash)
}

func deepHashChunks(chunks []any, acc [48]byte) [48]byte {
	if len(chunks) == 0 {
		return acc
	}

	hashPair := make([]byte, 0, 96)
	hashPair = append(hashPair, acc[:]...)

	chunkHash := deepHashItem(chunks[0])
	hashPair = append(hashPair, chunkHash[:]...)

	newAcc := sha512.Sum384(hashPair)
	return deepHashChunks(chunks[1:], newAcc)
}

func deepHashItem(data any) [48]byte {
	switch x := data.(type) {
	case []any:
		return DeepHash(x)
	case []Base64String:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = item
		}
		return DeepHash(items)
	case []byte:
		return deepHashBlob(x)
	case Base64String:
		return deepHashBlob(x)
	case string:
		return deepHashBlob([]byte(x))
	default:
		panic("unsupported deep hash type")
	}
}

func deepHashBlob(data []byte) [48]byte {
	tag := append([]byte("blob"), []byte(strconv.Itoa(len(data)))...)

	tagHash := sha512.Sum384(tag)
	dataHash := sha512.Sum384(data)

	buf := make([]byte, 0, 96)
	buf = append(buf, tagHash[:]...)
	buf = append(buf, dataHash[:]...)

	return sha512.Sum384(buf)
}
