package arweave

import (
	"encoding/base64"
	"encoding/json"
)

type Base64String []byte

func Base64StringFromBase64(s string) (out Base64String, err error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return
	}
	out = Base64String(b)
	return
}

func (self *Base64String) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}

	// Decode base64
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	*self = []byte(b)
	return nil
}

func (self *Base64String) MarshalJSON() (out []byte, err error) {
	s := base64.RawURLEncoding.EncodeToString([]byte(*self))
	return json.Marshal(s)
}

func (self Base64String) Base64() string {
	return base64.RawURLEncoding.EncodeToString([]byte(self))
}

func (self Base64String) Bytes() []byte {
	return []byte(self)
}

func (self Base64String) Head(i int) []byte {
	return []byte(self[:i])
}
