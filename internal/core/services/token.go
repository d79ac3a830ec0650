package services

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

const permitTokenBytes = 24

// NewPermitToken returns an unguessable URL-safe token for a vote permit.
// 24 random bytes give 192 bits of entropy, so collisions are not a
// practical concern.
func NewPermitToken() string {
	b := make([]byte, permitTokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
}
