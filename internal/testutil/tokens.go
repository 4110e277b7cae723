package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Token builds an unsigned JWT-shaped token with the given claims. The
// signature segment is a fixed placeholder since the client never
// verifies it.
func Token(claims map[string]any) string {
	header, _ := json.Marshal(map[string]any{"alg": "none", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		panic(fmt.Sprintf("marshal claims: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString([]byte("sig"))
}

// ValidToken returns a token that expires one hour from now.
func ValidToken() string {
	return Token(map[string]any{"exp": time.Now().Add(time.Hour).Unix()})
}

// ExpiredToken returns a token that expired one hour ago.
func ExpiredToken() string {
	return Token(map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
}
