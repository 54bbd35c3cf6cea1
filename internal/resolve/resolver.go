package resolve

import (
	"context"
	"errors"
	"net/http"

	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/internal/common"
	"github.com/loykin/pagesbadge/internal/constants"
	"github.com/loykin/pagesbadge/pkg/badge"
)

// Outcome names the terminal state a resolution ended in.
type Outcome string

const (
	OutcomeDeployment    Outcome = "deployment"
	OutcomeProject       Outcome = "project"
	OutcomeInvalid       Outcome = "invalid"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeUpstreamError Outcome = "upstream_error"
)

// Result is a resolved badge together with the HTTP status it should be served with.
type Result struct {
	Badge      badge.Descriptor
	StatusCode int
	Outcome    Outcome
	// Err is the upstream error behind a not_found or upstream_error outcome.
	Err error
}

// Resolver turns a Query into a badge: the newest matching deployment when there is
// one, otherwise the project status.
type Resolver struct {
	upstream Upstream
	selector *Selector
	logger   *common.Logger
}

// NewResolver returns a Resolver reading from upstream.
func NewResolver(upstream Upstream) *Resolver {
	return &Resolver{
		upstream: upstream,
		selector: NewSelector(upstream),
		logger:   common.GetLogger().WithComponent("resolver"),
	}
}

// Resolve never fails: every error is turned into an error badge and status code.
func (r *Resolver) Resolve(ctx context.Context, q Query) Result {
	if q.ProjectName == "" {
		return Result{
			Badge:      badge.Error(constants.MessageMissingProject, badge.ColorInactive),
			StatusCode: http.StatusBadRequest,
			Outcome:    OutcomeInvalid,
		}
	}
	logger := r.logger.WithProject(q.ProjectName)

	d, err := r.selector.Select(ctx, q)
	if err != nil {
		logger.Warn("deployment lookup failed", "branch", q.Branch, "error", err)
		return upstreamFailure(err)
	}
	if d != nil {
		res := deploymentResult(d, q)
		logger.Debug("resolved from deployment", "deployment", d.ID, "status", d.Status, "message", res.Badge.Message)
		return res
	}

	logger.Debug("no deployment found, falling back to project status", "branch", q.Branch)
	p, err := r.upstream.GetProject(ctx, q.ProjectName)
	if err != nil {
		logger.Warn("project lookup failed", "error", err)
		return upstreamFailure(err)
	}
	return Result{
		Badge:      badge.New(badge.DefaultLabel, badge.MapProjectStatus(p.Status), constants.ProjectCacheSeconds),
		StatusCode: http.StatusOK,
		Outcome:    OutcomeProject,
	}
}

func deploymentResult(d *cloudflare.Deployment, q Query) Result {
	label := badge.DefaultLabel
	if q.ShowEnvironment {
		env, ok := badge.InferEnvironment(d.Environment, d.StageName)
		if !ok {
			env = badge.EnvironmentPreview
		}
		label = badge.EnvironmentLabel(env)
	}
	return Result{
		Badge:      badge.New(label, badge.MapDeploymentStatus(d.Status), constants.DeploymentCacheSeconds),
		StatusCode: http.StatusOK,
		Outcome:    OutcomeDeployment,
	}
}

func upstreamFailure(err error) Result {
	if errors.Is(err, cloudflare.ErrProjectNotFound) {
		return Result{
			Badge:      badge.Error(constants.MessageProjectNotFound, badge.ColorLightgrey),
			StatusCode: http.StatusNotFound,
			Outcome:    OutcomeNotFound,
			Err:        err,
		}
	}
	return Result{
		Badge:      badge.Error(constants.MessageAPIError, badge.ColorCritical),
		StatusCode: http.StatusBadGateway,
		Outcome:    OutcomeUpstreamError,
		Err:        err,
	}
}
