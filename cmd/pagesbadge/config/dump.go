package config

import (
	"github.com/loykin/pagesbadge/internal/util"
	"gopkg.in/yaml.v3"
)

type dumpDoc struct {
	Cloudflare struct {
		AccountID string `yaml:"account_id"`
		APIToken  string `yaml:"api_token"`
		BaseURL   string `yaml:"base_url"`
		PerPage   int    `yaml:"per_page"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"cloudflare"`
	Client ClientConfig `yaml:"client"`
	Server struct {
		Addr              string `yaml:"addr"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
		Metrics           bool   `yaml:"metrics"`
	} `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// YAML renders the effective configuration with the API token masked and durations
// in Go duration syntax, so the output can be fed back through --config.
func (c *Config) YAML() ([]byte, error) {
	var d dumpDoc
	d.Cloudflare.AccountID = c.Cloudflare.AccountID
	d.Cloudflare.APIToken = util.MaskSecret(c.Cloudflare.APIToken)
	d.Cloudflare.BaseURL = c.Cloudflare.BaseURL
	d.Cloudflare.PerPage = c.Cloudflare.PerPage
	d.Cloudflare.Timeout = c.Cloudflare.Timeout.String()
	d.Client = c.Client
	d.Server.Addr = c.Server.Addr
	d.Server.ReadHeaderTimeout = c.Server.ReadHeaderTimeout.String()
	d.Server.Metrics = c.Server.Metrics
	d.Logging = c.Logging
	return yaml.Marshal(&d)
}
