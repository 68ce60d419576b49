package arweave

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"reflect"
)

type Encoder struct {
	*bytes.Buffer
}

func NewEncoder() Encoder {
	return Encoder{new(bytes.Buffer)}
}

func (self Encoder) Write(val any, sizeBytes int) {
	if val == nil || reflect.ValueOf(val).IsZero() {
		for i := 0; i < sizeBytes; i++ {
			self.WriteByte(0)
		}
		return
	}

	switch x := val.(type) {
	case []byte:
		self.WriteBuffer(x, sizeBytes)
	case Base64String:
		self.WriteBuffer([]byte(x), sizeBytes)
	case BigInt:
		self.WriteBuffer(x.Int.Bytes(), sizeBytes)
	case int:
		self.WriteUint64(uint64(x), sizeBytes)
	case int64:
		self.WriteUint64(uint64(x), sizeBytes)
	case uint64:
		self.WriteUint64(x, sizeBytes)
	default:
		panic("unsupported encoder type")
	}
}

func (self Encoder) RawWrite(val any) {
	switch x := val.(type) {
	case byte:
		self.Buffer.WriteByte(x)
	case []byte:
		self.Buffer.Write(x)
	case Base64String:
		self.Buffer.Write(x.Bytes())
	case BigInt:
		self.Buffer.Write(x.Int.Bytes())
	case uint16:
		self.RawWriteUint16(x)
	case uint64:
		// Minimal big endian representation, no leading zeros
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, x)
		self.Buffer.Write(self.Trim(buf))
	case []Base64String:
		self.RawWriteBase64StringSlice(x)
	default:
		panic("unsupported encoder raw type")
	}
}

func (self Encoder) WriteBuffer(val []byte, sizeBytes int) {
	size := len(val)
	for i := 0; i < sizeBytes; i++ {
		self.WriteByte(byte(size >> uint((sizeBytes-i-1)*8)))
	}
	self.Buffer.Write(val)
}

// Raw value packed into exactly sizeBytes bytes, used for list counts
func (self Encoder) WriteUint(val uint, sizeBytes int) {
	for i := 0; i < sizeBytes; i++ {
		self.WriteByte(byte(val >> uint((sizeBytes-i-1)*8)))
	}
}

// Minimal big endian representation of the value, prefixed with its size
func (self Encoder) WriteUint64(val uint64, sizeBytes int) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, val)
	self.WriteBuffer(self.Trim(buf), sizeBytes)
}

// Elements are written in reverse order, the way Erlang nodes fold iolists.
func (self Encoder) WriteSliceByte(val [][]byte, lenBytes, elemSizeBytes int) {
	self.WriteUint(uint(len(val)), lenBytes)
	for i := len(val) - 1; i >= 0; i-- {
		self.Write(val[i], elemSizeBytes)
	}
}

func (self Encoder) RawWriteUint64(val uint64) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, val)
	self.Buffer.Write(buf)
}

func (self Encoder) RawWriteUint16(val uint16) {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, val)
	self.Buffer.Write(buf)
}

// Big endian value padded with zeros to sizeBytes bytes, sizeBytes >= 8
func (self Encoder) RawWriteSize(val uint64, sizeBytes int) {
	for i := 0; i < sizeBytes-8; i++ {
		self.WriteByte(0)
	}
	self.RawWriteUint64(val)
}

func (self Encoder) RawWriteBigInt(val BigInt, sizeBytes int) {
	if !val.IsUint64() {
		panic("bad bigint value")
	}
	value := val.Uint64()
	for i := 0; i < sizeBytes; i++ {
		self.WriteByte(byte(value >> uint((sizeBytes-i-1)*8)))
	}
}

func (self Encoder) RawWriteBase64StringSlice(val []Base64String) {
	for _, v := range val {
		self.Buffer.Write(v.Bytes())
	}
}

func (self Encoder) Trim(val []byte) []byte {
	return bytes.TrimLeft(val, "\x00")
}

func (self Encoder) Base64() string {
	return base64.RawURLEncoding.EncodeToString(self.Buffer.Bytes())
}
