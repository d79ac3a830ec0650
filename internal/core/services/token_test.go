package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPermitToken(t *testing.T) {
	token := NewPermitToken()

	assert.Len(t, token, 32) // 24 bytes base64url without padding
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), token)
}

func TestNewPermitTokenIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		token := NewPermitToken()
		_, dup := seen[token]
		assert.False(t, dup, "duplicate token generated: %s", token)
		seen[token] = struct{}{}
	}
}
