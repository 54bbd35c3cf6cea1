package pagesbadge

import (
	"context"
	"net/http"

	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/internal/common"
	"github.com/loykin/pagesbadge/internal/resolve"
	"github.com/loykin/pagesbadge/internal/server"
	"github.com/loykin/pagesbadge/pkg/badge"
)

// Re-export commonly used types for public API

// Badge is the Shields.io endpoint descriptor.
type Badge = badge.Descriptor

// Query selects the project, optional branch and label style of a badge.
type Query = resolve.Query

// Result is a resolved badge with the HTTP status it should be served with.
type Result = resolve.Result

// Options configures access to the Cloudflare API.
type Options = cloudflare.Options

// ServerOptions configures the HTTP surface.
type ServerOptions = server.Options

// Sentinel errors reported in Result.Err.
var (
	ErrProjectNotFound     = cloudflare.ErrProjectNotFound
	ErrUpstreamUnavailable = cloudflare.ErrUpstreamUnavailable
)

// NewResolver builds a resolver backed by the Cloudflare API.
func NewResolver(opt Options) *resolve.Resolver {
	return resolve.NewResolver(cloudflare.NewClient(opt))
}

// Resolve resolves a single badge. It performs at most two sequential upstream calls.
func Resolve(ctx context.Context, opt Options, q Query) Result {
	return NewResolver(opt).Resolve(ctx, q)
}

// NewServer builds the badge HTTP server.
func NewServer(opt Options, sopt ServerOptions) *server.Server {
	return server.New(NewResolver(opt), sopt)
}

// NewHandler returns the badge routes as an http.Handler for embedding in another server.
func NewHandler(opt Options) http.Handler {
	return NewServer(opt, ServerOptions{}).Handler()
}

// Logging re-exports

type Logger = common.Logger

type LogLevel = common.LogLevel

const (
	LogLevelError = common.LogLevelError
	LogLevelWarn  = common.LogLevelWarn
	LogLevelInfo  = common.LogLevelInfo
	LogLevelDebug = common.LogLevelDebug
)

func NewLogger(level LogLevel) *Logger      { return common.NewLogger(level) }
func NewJSONLogger(level LogLevel) *Logger  { return common.NewJSONLogger(level) }
func NewColorLogger(level LogLevel) *Logger { return common.NewColorLogger(level) }

// SetDefaultLogger replaces the process-wide logger. Call it before building clients.
func SetDefaultLogger(logger *Logger) { common.SetDefaultLogger(logger) }
