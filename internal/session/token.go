package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// ExpirationTime extracts the expiration instant from a signed session
// token without verifying its signature; verification is the server's job.
// The token must have the usual three dot-separated base64url segments with
// a JSON payload carrying a numeric `exp` in Unix seconds. Any deviation
// yields ok=false rather than an error: callers treat an undeterminable
// expiry as "unknown", not as a failure.
func ExpirationTime(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp *float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == nil {
		return time.Time{}, false
	}

	// exp is in seconds; keep sub-second precision in the conversion.
	millis := int64(*claims.Exp * 1000)
	return time.UnixMilli(millis), true
}

// decodeSegment accepts both padded and unpadded base64url, since issuers
// vary.
func decodeSegment(segment string) ([]byte, error) {
	if decoded, err := base64.RawURLEncoding.DecodeString(segment); err == nil {
		return decoded, nil
	}
	return base64.URLEncoding.DecodeString(segment)
}
