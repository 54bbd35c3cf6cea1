package resolve

import (
	"context"
	"strings"

	"github.com/loykin/pagesbadge/internal/cloudflare"
)

// Upstream is the subset of the Cloudflare client the resolver depends on.
type Upstream interface {
	ListDeployments(ctx context.Context, project string) ([]cloudflare.Deployment, error)
	GetProject(ctx context.Context, project string) (cloudflare.Project, error)
}

// Selector picks the deployment a badge describes.
type Selector struct {
	upstream Upstream
}

// NewSelector returns a Selector reading from upstream.
func NewSelector(upstream Upstream) *Selector {
	return &Selector{upstream: upstream}
}

// Select fetches recent deployments and returns the newest one on the requested branch,
// or nil when there is none. Upstream errors are returned unchanged so callers can tell
// cloudflare.ErrProjectNotFound from cloudflare.ErrUpstreamUnavailable.
func (s *Selector) Select(ctx context.Context, q Query) (*cloudflare.Deployment, error) {
	deployments, err := s.upstream.ListDeployments(ctx, q.ProjectName)
	if err != nil {
		return nil, err
	}
	deployments = FilterByBranch(deployments, q.Branch)
	if len(deployments) == 0 {
		return nil, nil
	}
	d := deployments[0]
	return &d, nil
}

// FilterByBranch keeps deployments whose trigger branch equals branch, ignoring case.
// An empty branch keeps everything. Order is preserved.
func FilterByBranch(deployments []cloudflare.Deployment, branch string) []cloudflare.Deployment {
	if branch == "" {
		return deployments
	}
	want := strings.ToLower(branch)
	out := deployments[:0:0]
	for _, d := range deployments {
		if strings.ToLower(d.Branch) == want {
			out = append(out, d)
		}
	}
	return out
}
