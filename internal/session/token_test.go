package session

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToken builds a structurally valid token around the given payload.
// The signature segment is junk: the evaluator must not care.
func fakeToken(payload string) string {
	encode := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}
	return encode(`{"alg":"HS256","typ":"JWT"}`) + "." + encode(payload) + "." + encode("signature")
}

func TestExpirationTimeValidToken(t *testing.T) {
	exp := time.Date(2026, 12, 1, 8, 30, 0, 0, time.UTC)
	token := fakeToken(`{"userId":"u1","exp":` + strconv.FormatInt(exp.Unix(), 10) + `}`)

	got, ok := ExpirationTime(token)
	require.True(t, ok)
	assert.Equal(t, exp.UnixMilli(), got.UnixMilli())
}

func TestExpirationTimeSecondsToMillis(t *testing.T) {
	token := fakeToken(`{"exp":1000}`)
	got, ok := ExpirationTime(token)
	require.True(t, ok)
	assert.Equal(t, int64(1000*1000), got.UnixMilli())
}

func TestExpirationTimePaddedSegment(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"exp":1700000000}`))
	token := "header." + payload + ".sig"

	_, ok := ExpirationTime(token)
	assert.True(t, ok)
}

func TestExpirationTimeMalformedTokens(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"two segments":      "abc.def",
		"four segments":     "a.b.c.d",
		"payload not b64":   "header.!!!.sig",
		"payload not json":  fakeToken("not json at all"),
		"missing exp":       fakeToken(`{"userId":"u1"}`),
		"exp not a number":  fakeToken(`{"exp":"tomorrow"}`),
		"payload is number": fakeToken(`42`),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ExpirationTime(token)
			assert.False(t, ok)
			assert.True(t, got.IsZero())
		})
	}
}
