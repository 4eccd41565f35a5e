package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionTokenBytes gives 256 bits of entropy per token.
const sessionTokenBytes = 32

// IssueToken returns a new opaque session token.
func IssueToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
