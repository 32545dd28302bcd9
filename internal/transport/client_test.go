package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := storage.NewMemoryStore()
	return New(srv.URL, store, zerolog.Nop(), Options{}), store
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	})
	_ = store.Set(storage.KeyAuthToken, "tok-abc")

	if _, err := client.Get(context.Background(), "/public/companies", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	if _, err := client.Get(context.Background(), "/public/companies", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestUnauthorizedClearsToken(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"token expired"}}`))
	})
	_ = store.Set(storage.KeyAuthToken, "stale")

	_, err := client.Get(context.Background(), "/user/tickets", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	tok, _ := store.Get(storage.KeyAuthToken)
	if tok != "" {
		t.Fatalf("expected token cleared, got %q", tok)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{400, CodeBadRequest},
		{401, CodeUnauthorized},
		{403, CodeForbidden},
		{404, CodeNotFound},
		{409, CodeConflict},
		{500, CodeServerError},
		{502, CodeServerError},
	}
	for _, c := range cases {
		if got := Classify(c.status); got != c.code {
			t.Fatalf("Classify(%d) = %s, want %s", c.status, got, c.code)
		}
	}
}

func TestErrorMessageShapes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"email already registered"}`))
	})
	_, err := client.Post(context.Background(), "/auth/user/register", map[string]string{})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "email already registered" {
		t.Fatalf("flat error shape not parsed: %q", apiErr.Message)
	}
}

func TestTenantPathSubstitution(t *testing.T) {
	var gotPath string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})
	_ = store.Set(storage.KeyTenantID, "t-42")

	if _, err := client.Get(context.Background(), "/tenant/{tenantId}/public/companies", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotPath != "/tenant/t-42/public/companies" {
		t.Fatalf("tenant placeholder not substituted: %s", gotPath)
	}
}

func TestTenantPathWithoutTenant(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("request must not reach the network")
	})
	_, err := client.Get(context.Background(), "/tenant/{tenantId}/public/companies", nil)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Code != CodeConfigError {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	store := storage.NewMemoryStore()
	client := New("http://127.0.0.1:1", store, zerolog.Nop(), Options{})
	_, err := client.Get(context.Background(), "/public/companies", nil)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Code != CodeNetworkError {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	})
	q := url.Values{}
	q.Set("q", "bcp arequipa")
	if _, err := client.Get(context.Background(), "/public/companies/search", q); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotQuery != "q=bcp+arequipa" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}
