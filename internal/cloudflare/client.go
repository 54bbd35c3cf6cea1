package cloudflare

import (
	"context"
	"crypto/tls"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/pagesbadge/internal/common"
	"github.com/loykin/pagesbadge/internal/constants"
	"github.com/loykin/pagesbadge/internal/httpc"
	"github.com/tidwall/gjson"
)

const (
	deploymentsPath = "/accounts/{accountId}/pages/projects/{projectName}/deployments"
	projectPath     = "/accounts/{accountId}/pages/projects/{projectName}"
)

// Options configures a Client. AccountID and APIToken are required by the upstream API.
type Options struct {
	AccountID string
	APIToken  string
	BaseURL   string
	// PerPage bounds the deployments fetched per lookup. Zero means the default;
	// values above the upstream maximum are clamped.
	PerPage int
	Timeout time.Duration
	TLS     *tls.Config
}

// Client reads Pages deployments and projects from the Cloudflare REST API.
// It is safe for concurrent use; each call is a single attempt without retries.
type Client struct {
	rc        *resty.Client
	accountID string
	perPage   int
	logger    *common.Logger
}

// NewClient builds a Client from options.
func NewClient(opt Options) *Client {
	base := opt.BaseURL
	if base == "" {
		base = constants.DefaultAPIBaseURL
	}
	perPage := opt.PerPage
	if perPage <= 0 {
		perPage = constants.DefaultDeploymentsPerPage
	}
	if perPage > constants.MaxDeploymentsPerPage {
		perPage = constants.MaxDeploymentsPerPage
	}
	h := &httpc.Httpc{TlsConfig: opt.TLS, Token: opt.APIToken, BaseURL: base, Timeout: opt.Timeout}
	return &Client{
		rc:        h.New(),
		accountID: opt.AccountID,
		perPage:   perPage,
		logger:    common.GetLogger().WithComponent("cloudflare"),
	}
}

// ListDeployments returns the most recent deployments of a project, newest first as
// ordered by the upstream.
func (c *Client) ListDeployments(ctx context.Context, project string) ([]Deployment, error) {
	const op = "list deployments"
	body, err := c.get(ctx, op, deploymentsPath, project, map[string]string{
		"per_page": strconv.Itoa(c.perPage),
	})
	if err != nil {
		return nil, err
	}
	deployments := parseDeployments(body)
	c.logger.Debug("deployments fetched", "project", project, "count", len(deployments))
	return deployments, nil
}

// GetProject returns the project record.
func (c *Client) GetProject(ctx context.Context, project string) (Project, error) {
	body, err := c.get(ctx, "get project", projectPath, project, nil)
	if err != nil {
		return Project{}, err
	}
	p := parseProject(body)
	if p.Name == "" {
		p.Name = project
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, op, path, project string, query map[string]string) ([]byte, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"accountId":   c.accountID,
			"projectName": project,
		})
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	start := time.Now()
	resp, err := req.Get(path)
	if err != nil {
		c.logger.Warn("upstream request failed", "op", op, "project", project, "error", err)
		return nil, unavailable(op, 0, nil, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.logger.Debug("upstream response", "op", op, "project", project, "status_code", status,
		"response_size", len(body), "duration", time.Since(start))

	if status == http.StatusNotFound {
		return nil, notFound(op, status, errorMessages(body))
	}
	if !resp.IsSuccess() {
		msgs := errorMessages(body)
		c.logger.Warn("upstream returned an error", "op", op, "project", project, "status_code", status, "messages", msgs)
		return nil, unavailable(op, status, msgs, nil)
	}
	if !gjson.ValidBytes(body) {
		c.logger.Warn("upstream returned invalid json", "op", op, "project", project, "status_code", status)
		return nil, unavailable(op, status, nil, errInvalidJSON)
	}
	return body, nil
}
