package httpc

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const userAgent = "pagesbadge"

// Httpc describes how upstream clients are built. The zero value yields a plain client.
type Httpc struct {
	TlsConfig *tls.Config
	// Token is sent as a bearer credential on every request.
	Token   string
	BaseURL string
	Timeout time.Duration
}

// New returns a resty.Client configured according to the receiver's settings.
// Defaults: MinVersion TLS1.3 when a TLS config is given with MinVersion zero.
// The bearer token is attached by an oauth2 transport so it never appears in resty's
// request dumps.
func (h *Httpc) New() *resty.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if h.TlsConfig != nil {
		cfg := h.TlsConfig.Clone()
		if cfg.MinVersion == 0 {
			cfg.MinVersion = tls.VersionTLS13
		}
		tr.TLSClientConfig = cfg
	}

	var rt http.RoundTripper = tr
	if strings.TrimSpace(h.Token) != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: h.Token, TokenType: "Bearer"}),
			Base:   tr,
		}
	}

	c := resty.NewWithClient(&http.Client{Transport: rt, Timeout: h.Timeout})
	c.SetHeader("Accept", "application/json")
	c.SetHeader("User-Agent", userAgent)
	if h.BaseURL != "" {
		c.SetBaseURL(strings.TrimSuffix(h.BaseURL, "/"))
	}
	return c
}

// ParseTLSVersion converts a TLS version string to the corresponding crypto/tls constant.
// Supports "1.2", "12", "tls1.2", "tls12" and the same forms for 1.0, 1.1 and 1.3.
// Returns 0 if the version string is not recognized.
func ParseTLSVersion(version string) uint16 {
	switch strings.TrimSpace(strings.ToLower(version)) {
	case "1.0", "10", "tls1.0", "tls10":
		return tls.VersionTLS10
	case "1.1", "11", "tls1.1", "tls11":
		return tls.VersionTLS11
	case "1.2", "12", "tls1.2", "tls12":
		return tls.VersionTLS12
	case "1.3", "13", "tls1.3", "tls13":
		return tls.VersionTLS13
	default:
		return 0
	}
}
