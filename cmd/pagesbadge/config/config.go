package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/internal/common"
	"github.com/loykin/pagesbadge/internal/constants"
	"github.com/loykin/pagesbadge/internal/httpc"
	"github.com/loykin/pagesbadge/internal/server"
	"github.com/loykin/pagesbadge/internal/util"
	"github.com/spf13/viper"
)

type CloudflareConfig struct {
	AccountID string        `mapstructure:"account_id" yaml:"account_id" validate:"required"`
	APIToken  string        `mapstructure:"api_token" yaml:"api_token" validate:"required"`
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`
	PerPage   int           `mapstructure:"per_page" yaml:"per_page" validate:"gte=1"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
}

type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout" validate:"gte=0"`
	Metrics           bool          `mapstructure:"metrics" yaml:"metrics"`
}

type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=error warn warning info debug"`
	Format        string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json color colour"`
	MaskSensitive *bool  `mapstructure:"mask_sensitive" yaml:"mask_sensitive"`
	Color         *bool  `mapstructure:"color" yaml:"color"`
}

type Config struct {
	Cloudflare CloudflareConfig `mapstructure:"cloudflare" yaml:"cloudflare"`
	Client     ClientConfig     `mapstructure:"client" yaml:"client"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

var validate = newValidator()

// newValidator reports fields by their config key instead of the Go field name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewViper returns a viper instance with defaults and environment bindings.
// Every key can be set with PAGESBADGE_<SECTION>_<KEY>; the two credentials also
// read the canonical CLOUDFLARE_ACCOUNT_ID and CLOUDFLARE_API_TOKEN variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("config", "")
	v.SetDefault("cloudflare.account_id", "")
	v.SetDefault("cloudflare.api_token", "")
	v.SetDefault("cloudflare.base_url", constants.DefaultAPIBaseURL)
	v.SetDefault("cloudflare.per_page", constants.DefaultDeploymentsPerPage)
	v.SetDefault("cloudflare.timeout", constants.DefaultUpstreamTimeout)
	v.SetDefault("client.insecure", false)
	v.SetDefault("client.min_tls_version", "")
	v.SetDefault("server.addr", constants.DefaultListenAddr)
	v.SetDefault("server.read_header_timeout", constants.DefaultReadHeaderTimeout)
	v.SetDefault("server.metrics", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("cloudflare.account_id", constants.EnvPrefix+"_CLOUDFLARE_ACCOUNT_ID", constants.EnvAccountID)
	_ = v.BindEnv("cloudflare.api_token", constants.EnvPrefix+"_CLOUDFLARE_API_TOKEN", constants.EnvAPIToken)
	return v
}

// Load reads the optional YAML file at path into v and decodes the merged settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if p, ok := util.TrimEmptyCheck(path); ok {
		clean := filepath.Clean(p)
		info, err := os.Stat(clean)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("not a regular file: %s", clean)
		}
		v.SetConfigFile(clean)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", clean, err)
		}
	}

	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}
	if c.Cloudflare.PerPage > constants.MaxDeploymentsPerPage {
		errs = append(errs, fmt.Errorf("cloudflare.per_page: %d exceeds the maximum of %d",
			c.Cloudflare.PerPage, constants.MaxDeploymentsPerPage))
	}
	if err := c.validateTLS(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) validateTLS() error {
	if v, ok := util.TrimEmptyCheck(c.Client.MinTLSVersion); ok && httpc.ParseTLSVersion(v) == 0 {
		return fmt.Errorf("client.min_tls_version: unsupported version %q", v)
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		switch field {
		case "cloudflare.account_id":
			return fmt.Errorf("%s is required (set %s)", field, constants.EnvAccountID)
		case "cloudflare.api_token":
			return fmt.Errorf("%s is required (set %s)", field, constants.EnvAPIToken)
		}
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s: %q is not one of [%s]", field, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
}

// TLSConfig returns nil when no TLS option is set, leaving transport defaults alone.
func (c *Config) TLSConfig() *tls.Config {
	minVer := httpc.ParseTLSVersion(c.Client.MinTLSVersion)
	if !c.Client.Insecure && minVer == 0 {
		return nil
	}
	// #nosec G402 -- insecure mode is an explicit operator choice
	return &tls.Config{InsecureSkipVerify: c.Client.Insecure, MinVersion: minVer}
}

// ClientOptions maps the config onto upstream client options.
func (c *Config) ClientOptions() cloudflare.Options {
	return cloudflare.Options{
		AccountID: c.Cloudflare.AccountID,
		APIToken:  c.Cloudflare.APIToken,
		BaseURL:   c.Cloudflare.BaseURL,
		PerPage:   c.Cloudflare.PerPage,
		Timeout:   c.Cloudflare.Timeout,
		TLS:       c.TLSConfig(),
	}
}

// ServerOptions maps the config onto HTTP server options.
func (c *Config) ServerOptions() server.Options {
	return server.Options{
		Addr:              c.Server.Addr,
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout,
		Metrics:           c.Server.Metrics,
	}
}

// SetupLogging configures the global logger based on config settings
func (c *Config) SetupLogging() error {
	return c.SetupLoggingTo(os.Stdout)
}

// SetupLoggingTo is SetupLogging writing to w. The configured API token is
// registered with the logger so it never appears in log output verbatim.
func (c *Config) SetupLoggingTo(w io.Writer) error {
	level, ok := common.ParseLogLevel(util.TrimAndLower(c.Logging.Level))
	if !ok {
		return fmt.Errorf("invalid logging level: %s (valid: error, warn, info, debug)", c.Logging.Level)
	}

	var logger *common.Logger
	format := util.TrimAndLower(c.Logging.Format)
	useColor := c.Logging.Color != nil && *c.Logging.Color
	switch format {
	case "json":
		logger = common.NewLoggerTo(w, "json", level)
	case "color", "colour":
		logger = common.NewColorLoggerTo(w, level)
	case "text", "":
		if useColor {
			logger = common.NewColorLoggerTo(w, level)
		} else {
			logger = common.NewLoggerTo(w, "text", level)
		}
	default:
		return fmt.Errorf("invalid logging format: %s (valid: text, json, color)", c.Logging.Format)
	}

	maskingEnabled := true
	if c.Logging.MaskSensitive != nil {
		maskingEnabled = *c.Logging.MaskSensitive
	}
	logger.EnableMasking(maskingEnabled)
	logger.AddSecret("cloudflare_api_token", c.Cloudflare.APIToken)
	common.SetDefaultLogger(logger)
	return nil
}
