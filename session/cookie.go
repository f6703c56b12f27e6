package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretSize = 32

// CookieCodec transports the session id in an HMAC-signed cookie. A cookie
// that fails signature or expiry checks is treated as absent, never as an
// error: the caller simply starts a fresh session.
type CookieCodec struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieCodec builds a codec. The secret must be at least 32 bytes; ttl
// defaults to 24h.
func NewCookieCodec(name string, secret []byte, ttl time.Duration) (*CookieCodec, error) {
	if name == "" {
		return nil, errors.New("cookie name must not be empty")
	}
	if len(secret) < minSecretSize {
		return nil, errors.New("cookie secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &CookieCodec{
		name:   name,
		secret: secret,
		ttl:    ttl,
	}, nil
}

// WithSecure marks issued cookies Secure (HTTPS-only).
func (c *CookieCodec) WithSecure(secure bool) *CookieCodec {
	c.secure = secure
	return c
}

// Issue signs sessionID and sets it on the response.
func (c *CookieCodec) Issue(w http.ResponseWriter, sessionID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read extracts and verifies the session id from the request cookie.
func (c *CookieCodec) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}
