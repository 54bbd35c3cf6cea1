package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestHttpc_BearerTokenAndBaseURL(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	h := &Httpc{Token: "cf-token", BaseURL: srv.URL + "/client/v4/"}
	resp, err := h.New().R().Get("/accounts/abc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode())
	}
	if gotAuth != "Bearer cf-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected json accept header, got %q", gotAccept)
	}
	if gotPath != "/client/v4/accounts/abc" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestHttpc_NoTokenNoAuthorization(t *testing.T) {
	h := &Httpc{}
	c := h.New()
	if _, ok := c.GetClient().Transport.(*oauth2.Transport); ok {
		t.Fatal("did not expect oauth2 transport without token")
	}
}

func TestHttpc_InsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, err := (&Httpc{}).New().R().Get(srv.URL); err == nil {
		t.Fatal("expected certificate error without insecure TLS")
	}

	h := &Httpc{TlsConfig: &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}} // #nosec G402 -- test server
	resp, err := h.New().R().Get(srv.URL)
	if err != nil || resp.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200 with insecure TLS, got err=%v", err)
	}
}

func TestHttpc_DefaultsMinTLS13(t *testing.T) {
	h := &Httpc{TlsConfig: &tls.Config{}, Token: "x"}
	c := h.New()
	ot, ok := c.GetClient().Transport.(*oauth2.Transport)
	if !ok {
		t.Fatalf("expected oauth2 transport, got %T", c.GetClient().Transport)
	}
	tr, ok := ot.Base.(*http.Transport)
	if !ok || tr.TLSClientConfig == nil {
		t.Fatalf("expected base transport with TLS config")
	}
	if tr.TLSClientConfig.MinVersion != tls.VersionTLS13 {
		t.Fatalf("expected TLS1.3 minimum, got %v", tr.TLSClientConfig.MinVersion)
	}
	if h.TlsConfig.MinVersion != 0 {
		t.Fatal("caller TLS config must not be mutated")
	}
}

func TestHttpc_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	h := &Httpc{Timeout: 20 * time.Millisecond}
	if _, err := h.New().R().Get(srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestParseTLSVersion(t *testing.T) {
	tests := map[string]uint16{
		"1.2":    tls.VersionTLS12,
		"TLS13":  tls.VersionTLS13,
		" 1.0 ":  tls.VersionTLS10,
		"tls1.1": tls.VersionTLS11,
		"":       0,
		"ssl3":   0,
	}
	for in, want := range tests {
		if got := ParseTLSVersion(in); got != want {
			t.Errorf("ParseTLSVersion(%q) = %v, want %v", in, got, want)
		}
	}
}
