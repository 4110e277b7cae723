// Package token provides local sanity and expiry validation of JWT
// bearer tokens. Only the payload segment is decoded; no signature
// verification is performed, so a passing token is not authentication
// proof.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/stopfstedt/local-iliosapiclient/pkg/apierr"
)

// Validate checks that token is well formed and unexpired against the
// current wall clock. It is a pure function of the token and the clock.
func Validate(token string) error {
	return ValidateAt(token, time.Now())
}

// ValidateAt is Validate with an explicit clock, for callers that need
// deterministic time.
func ValidateAt(token string, now time.Time) error {
	if strings.TrimSpace(token) == "" {
		return apierr.New(apierr.KindEmptyToken, "token is empty")
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return apierr.New(apierr.KindMalformedToken, "token does not have 3 segments")
	}

	payload, err := decodeSegment(segments[1])
	if err != nil {
		return &apierr.Error{
			Kind:    apierr.KindUndecodableToken,
			Message: "token payload is not decodable",
			Err:     err,
		}
	}

	claims := map[string]any{}
	if err := json.Unmarshal(payload, &claims); err != nil || len(claims) == 0 {
		return &apierr.Error{
			Kind:    apierr.KindUndecodableToken,
			Message: "token payload is not a JSON claim set",
			Err:     err,
		}
	}

	// A token whose expiry cannot be proven counts as expired.
	exp, ok := claims["exp"].(float64)
	if !ok || int64(exp) < now.Unix() {
		return apierr.New(apierr.KindExpiredToken, "token is expired")
	}

	return nil
}

// decodeSegment decodes a JWT segment, tolerating both padded and
// unpadded base64url encodings.
func decodeSegment(segment string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "=")); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(segment)
}
