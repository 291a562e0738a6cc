package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Tokens ride in the megano_token cookie alongside the basket session, so
// they default to the same month-long lifetime.
const defaultTokenTTL = 30 * 24 * time.Hour

// HMACStrategy mints and verifies shop auth tokens. A token is
// "userID:expires" signed with HMAC-SHA256 and URL-safe base64 encoded, so it
// survives cookies and Authorization headers unescaped.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed auth token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	claims := fmt.Sprintf("%d:%d", userID, time.Now().Add(s.ttl).Unix())
	signed := claims + ":" + s.sign(claims)
	return base64.RawURLEncoding.EncodeToString([]byte(signed)), nil
}

// ParseToken verifies the signature and expiry and returns the user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	signed := string(raw)
	cut := strings.LastIndex(signed, ":")
	if cut < 0 {
		return 0, ErrInvalidToken
	}
	claims, sig := signed[:cut], signed[cut+1:]
	if !hmac.Equal([]byte(s.sign(claims)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	idPart, expiresPart, ok := strings.Cut(claims, ":")
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(expiresPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if time.Now().After(time.Unix(expires, 0)) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(claims string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(claims))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
