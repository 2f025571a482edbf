package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newDiscoveryServer(t *testing.T, doc map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
}

func TestNewOIDCProvider(t *testing.T) {
	srv := newDiscoveryServer(t, map[string]interface{}{
		"issuer":   "https://sso.example.edu/realms/counseling",
		"jwks_uri": "https://sso.example.edu/realms/counseling/protocol/openid-connect/certs",
	})
	defer srv.Close()

	provider, err := NewOIDCProvider(srv.URL)
	if err != nil {
		t.Fatalf("NewOIDCProvider() error: %v", err)
	}
	if provider.Issuer != "https://sso.example.edu/realms/counseling" {
		t.Errorf("unexpected issuer: %s", provider.Issuer)
	}
	if provider.JWKSURI == "" {
		t.Error("expected jwks_uri to be populated")
	}
}

func TestNewOIDCProvider_TrailingSlash(t *testing.T) {
	srv := newDiscoveryServer(t, map[string]interface{}{
		"issuer":   "https://sso.example.edu",
		"jwks_uri": "https://sso.example.edu/certs",
	})
	defer srv.Close()

	if _, err := NewOIDCProvider(srv.URL + "/"); err != nil {
		t.Fatalf("NewOIDCProvider() error with trailing slash: %v", err)
	}
}

func TestNewOIDCProvider_MissingJWKS(t *testing.T) {
	srv := newDiscoveryServer(t, map[string]interface{}{
		"issuer": "https://sso.example.edu",
	})
	defer srv.Close()

	if _, err := NewOIDCProvider(srv.URL); err == nil {
		t.Fatal("expected error when jwks_uri is missing")
	}
}

func TestNewOIDCProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewOIDCProvider(srv.URL); err == nil {
		t.Fatal("expected error on discovery failure")
	}
}
