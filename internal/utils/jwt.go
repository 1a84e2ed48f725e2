package utils // package utils provides helpers for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Sentinel errors returned by ParseAccessToken. Callers use these to
// distinguish an expired token from a malformed or tampered one.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessToken is a signed HS256 JWT together with its expiry.  The
// token carries the username as its subject claim and is sent by
// clients in the Authorization header on protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT embedding the given
// username.  Claims are the standard ones: subject (sub), expiration
// (exp) and issued-at (iat).  ttlHours controls the token lifetime;
// the service default is 24 hours.
func NewAccessToken(secret, username string, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token
// string and returns the embedded username.  It returns
// ErrTokenExpired for a token past its exp claim and ErrTokenInvalid
// for everything else that fails verification, including tokens
// signed with a different method or secret.
func ParseAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is ever used for signing; reject other methods.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tok.Valid {
		return "", ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
