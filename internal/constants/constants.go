package constants

import "time"

// Upstream Constants
const (
	DefaultAPIBaseURL = "https://api.cloudflare.com/client/v4"

	// Deployments fetched per lookup; enough to find a branch among recent builds.
	DefaultDeploymentsPerPage = 10
	MaxDeploymentsPerPage     = 25

	DefaultUpstreamTimeout = 10 * time.Second
)

// Badge Constants
const (
	DeploymentCacheSeconds = 60
	ProjectCacheSeconds    = 300

	MessageMissingProject  = "missing projectName"
	MessageProjectNotFound = "project not found"
	MessageAPIError        = "api error"
)

// Query parameter names accepted by the badge endpoint.
const (
	QueryProjectName = "projectName"
	QueryBranch      = "branch"
	QueryShowEnv     = "showEnv"
)

// Server Constants
const (
	DefaultListenAddr        = ":8080"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Environment variables holding the upstream credentials.
const (
	EnvAccountID = "CLOUDFLARE_ACCOUNT_ID"
	EnvAPIToken  = "CLOUDFLARE_API_TOKEN"
	EnvPrefix    = "PAGESBADGE"
)
