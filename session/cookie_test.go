package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func issueAndBounce(t *testing.T, codec *CookieCodec, sessionID string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := codec.Issue(rec, sessionID); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}

	return req
}

func TestCookieRoundTrip(t *testing.T) {
	codec, err := NewCookieCodec("gg_session", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	req := issueAndBounce(t, codec, "sid-1")

	got, ok := codec.Read(req)
	if !ok || got != "sid-1" {
		t.Fatalf("Read = (%q, %v), want (sid-1, true)", got, ok)
	}
}

func TestCookieTamperRejected(t *testing.T) {
	codec, err := NewCookieCodec("gg_session", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := codec.Issue(rec, "sid-1"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cookie := rec.Result().Cookies()[0]
	// Flip a character in the signature segment.
	parts := strings.Split(cookie.Value, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", cookie.Value)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	cookie.Value = parts[0] + "." + parts[1] + "." + string(sig)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if got, ok := codec.Read(req); ok {
		t.Fatalf("tampered cookie accepted: %q", got)
	}
}

func TestCookieWrongSecretRejected(t *testing.T) {
	codec, err := NewCookieCodec("gg_session", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	other, err := NewCookieCodec("gg_session", []byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	req := issueAndBounce(t, codec, "sid-1")

	if got, ok := other.Read(req); ok {
		t.Fatalf("foreign-secret cookie accepted: %q", got)
	}
}

func TestCookieMissingIsAbsent(t *testing.T) {
	codec, err := NewCookieCodec("gg_session", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := codec.Read(req); ok {
		t.Fatal("Read reported a session for a bare request")
	}
}

func TestNewCookieCodecRejectsShortSecret(t *testing.T) {
	if _, err := NewCookieCodec("gg_session", []byte("short"), time.Hour); err == nil {
		t.Fatal("short secret accepted")
	}
	if _, err := NewCookieCodec("", testSecret, time.Hour); err == nil {
		t.Fatal("empty name accepted")
	}
}
