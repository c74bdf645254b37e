// Package codec converts opaque binary payloads to and from the text-safe
// form carried in the protocol's update fields. The relay never interprets
// the bytes; it only moves them.
package codec

import "encoding/base64"

// Encode returns the wire form of a binary payload. An empty payload (the
// empty-document snapshot) encodes to the empty string.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode parses the wire form back into bytes. The empty string decodes to
// empty bytes.
func Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
