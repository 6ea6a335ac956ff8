package auth

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const BearerPrefix = "Bearer "

// TokenCodec encodes a username and issue time into the opaque session
// token handed out at login. The token is not signed: it only attributes
// actions to a name and must never be used to grant access.
type TokenCodec struct {
	now func() time.Time
}

func NewTokenCodec() *TokenCodec {
	return &TokenCodec{now: time.Now}
}

func NewTokenCodecWithClock(now func() time.Time) *TokenCodec {
	return &TokenCodec{now: now}
}

// Issue returns base64("<username>:<unix millis>") and the issue time.
func (c *TokenCodec) Issue(username string) (string, time.Time) {
	issuedAt := c.now().UTC()
	raw := username + ":" + strconv.FormatInt(issuedAt.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw)), issuedAt
}

// Username recovers the name from a token, with or without the bearer
// prefix. ok is false when the token cannot be decoded.
func (c *TokenCodec) Username(token string) (string, bool) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), BearerPrefix))
	if token == "" {
		return "", false
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}

	decoded := string(raw)
	if i := strings.LastIndex(decoded, ":"); i >= 0 {
		decoded = decoded[:i]
	}
	if decoded == "" {
		return "", false
	}
	return decoded, true
}
