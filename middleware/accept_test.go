package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/session"
)

func TestAcceptTokenMaterializesMarker(t *testing.T) {
	kit := newTestKit(t)
	kit.store.valid["tok-1"] = "user-1"

	var seen *goGate.Marker
	chain := SessionSupport(kit.sessions)(
		AcceptToken(kit.engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = goGate.MarkerFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})),
	)

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/restricted?token=tok-1&uid=user-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.UserID != "user-1" {
		t.Fatalf("downstream marker = %+v, want user-1", seen)
	}
}

func TestAcceptTokenPersistsSessionAcrossRequests(t *testing.T) {
	kit := newTestKit(t)
	kit.store.valid["tok-1"] = "user-1"

	var hits int
	chain := SessionSupport(kit.sessions)(
		AcceptToken(kit.engine)(
			Restricted(kit.engine, goGate.RestrictedOptions{NotAuthRedirect: "/login"})(countingHandler(&hits)),
		),
	)

	// First request authenticates by token and receives a session cookie.
	first := httptest.NewRecorder()
	chain.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/restricted?token=tok-1&uid=user-1", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	// Second request carries only the cookie; the single-use token is gone.
	req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
	carryCookies(first, req)

	second := httptest.NewRecorder()
	chain.ServeHTTP(second, req)
	if second.Code != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", second.Code)
	}
	if hits != 2 {
		t.Fatalf("downstream handler invoked %d times, want 2", hits)
	}

	// Without the cookie the token is already consumed.
	third := httptest.NewRecorder()
	chain.ServeHTTP(third, httptest.NewRequest(http.MethodGet, "/restricted?token=tok-1&uid=user-1", nil))
	if third.Code != http.StatusFound {
		t.Fatalf("replayed token status = %d, want 302", third.Code)
	}
}

func TestAcceptTokenNoCredentialPassesThrough(t *testing.T) {
	kit := newTestKit(t)

	var hits int
	chain := AcceptToken(kit.engine)(countingHandler(&hits))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/everyone", nil))

	if rec.Code != http.StatusOK || hits != 1 {
		t.Fatalf("pass-through failed: status %d, hits %d", rec.Code, hits)
	}
}

func TestFlashMessageIsDeliveredExactlyOnce(t *testing.T) {
	kit := newTestKit(t)

	const notice = "you must be logged in"
	namespace := goGate.DefaultConfig().FlashNamespace

	var drained [][]string
	mux := http.NewServeMux()
	mux.Handle("/restricted", Restricted(kit.engine, goGate.RestrictedOptions{
		NotAuthRedirect:  "/login",
		FlashUserNotAuth: notice,
	})(http.NotFoundHandler()))
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handle, ok := session.HandleFromContext(r.Context())
		if !ok {
			t.Fatal("no session handle on /login")
		}
		messages, err := handle.Drain(r.Context(), namespace)
		if err != nil {
			t.Fatalf("Drain failed: %v", err)
		}
		drained = append(drained, messages)
		w.WriteHeader(http.StatusOK)
	})

	chain := SessionSupport(kit.sessions)(mux)

	// Unauthenticated hit on the gate: flash enqueued, then redirect.
	first := httptest.NewRecorder()
	chain.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/restricted", nil))
	if first.Code != http.StatusFound {
		t.Fatalf("gate status = %d, want 302", first.Code)
	}
	if loc := first.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}

	// Follow the redirect within the same session.
	login := httptest.NewRequest(http.MethodGet, "/login", nil)
	carryCookies(first, login)
	second := httptest.NewRecorder()
	chain.ServeHTTP(second, login)

	// Read again: the message must not replay.
	again := httptest.NewRequest(http.MethodGet, "/login", nil)
	carryCookies(first, again)
	third := httptest.NewRecorder()
	chain.ServeHTTP(third, again)

	if len(drained) != 2 {
		t.Fatalf("login handler ran %d times, want 2", len(drained))
	}
	if len(drained[0]) != 1 || drained[0][0] != notice {
		t.Fatalf("first drain = %v, want exactly %q", drained[0], notice)
	}
	if len(drained[1]) != 0 {
		t.Fatalf("second drain replayed messages: %v", drained[1])
	}
}

func TestFlashDoesNotLeakAcrossSessions(t *testing.T) {
	kit := newTestKit(t)

	namespace := goGate.DefaultConfig().FlashNamespace

	mux := http.NewServeMux()
	mux.Handle("/restricted", Restricted(kit.engine, goGate.RestrictedOptions{
		NotAuthRedirect:  "/login",
		FlashUserNotAuth: "denied",
	})(http.NotFoundHandler()))

	var foreign []string
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handle, _ := session.HandleFromContext(r.Context())
		messages, err := handle.Drain(r.Context(), namespace)
		if err != nil {
			t.Fatalf("Drain failed: %v", err)
		}
		foreign = messages
	})

	chain := SessionSupport(kit.sessions)(mux)

	// Session A trips the gate and gets a flash notice.
	first := httptest.NewRecorder()
	chain.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/restricted", nil))

	// Session B (no cookie) reads its own flash scope: must be empty.
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if len(foreign) != 0 {
		t.Fatalf("flash leaked across sessions: %v", foreign)
	}
}
