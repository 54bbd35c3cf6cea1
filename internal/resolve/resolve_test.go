package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/loykin/pagesbadge/internal/cloudflare"
	"github.com/loykin/pagesbadge/pkg/badge"
)

type fakeUpstream struct {
	deployments   []cloudflare.Deployment
	deploymentErr error
	project       cloudflare.Project
	projectErr    error

	listCalls    int
	projectCalls int
}

func (f *fakeUpstream) ListDeployments(_ context.Context, _ string) ([]cloudflare.Deployment, error) {
	f.listCalls++
	if f.deploymentErr != nil {
		return nil, f.deploymentErr
	}
	return f.deployments, nil
}

func (f *fakeUpstream) GetProject(_ context.Context, _ string) (cloudflare.Project, error) {
	f.projectCalls++
	if f.projectErr != nil {
		return cloudflare.Project{}, f.projectErr
	}
	return f.project, nil
}

func cacheSeconds(d badge.Descriptor) int {
	if d.CacheSeconds == nil {
		return -1
	}
	return *d.CacheSeconds
}

func TestQueryFromValues(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"projectName=demo", Query{ProjectName: "demo"}},
		{"projectName=demo&branch=Main&showEnv=TRUE", Query{ProjectName: "demo", Branch: "Main", ShowEnvironment: true}},
		{"projectName=demo&showEnv=1", Query{ProjectName: "demo"}},
		{"branch=", Query{}},
	}
	for _, tt := range tests {
		v, err := url.ParseQuery(tt.raw)
		if err != nil {
			t.Fatalf("ParseQuery: %v", err)
		}
		if got := QueryFromValues(v); got != tt.want {
			t.Errorf("QueryFromValues(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestFilterByBranch(t *testing.T) {
	ds := []cloudflare.Deployment{
		{ID: "1", Branch: "feature"},
		{ID: "2", Branch: "Main"},
		{ID: "3"},
		{ID: "4", Branch: "main"},
	}
	got := FilterByBranch(ds, "MAIN")
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "4" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if got := FilterByBranch(ds, ""); len(got) != 4 {
		t.Fatalf("empty branch should keep everything, got %d", len(got))
	}
	if got := FilterByBranch(ds, "release"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
	if ds[0].ID != "1" || ds[1].ID != "2" {
		t.Fatal("input slice was modified")
	}
}

func TestSelector_Select(t *testing.T) {
	up := &fakeUpstream{deployments: []cloudflare.Deployment{
		{ID: "newest", Branch: "feature"},
		{ID: "main-new", Branch: "main"},
		{ID: "main-old", Branch: "main"},
	}}
	s := NewSelector(up)

	d, err := s.Select(context.Background(), Query{ProjectName: "demo"})
	if err != nil || d == nil || d.ID != "newest" {
		t.Fatalf("expected newest deployment, got %+v err=%v", d, err)
	}
	d, err = s.Select(context.Background(), Query{ProjectName: "demo", Branch: "Main"})
	if err != nil || d == nil || d.ID != "main-new" {
		t.Fatalf("expected newest main deployment, got %+v err=%v", d, err)
	}
	d, err = s.Select(context.Background(), Query{ProjectName: "demo", Branch: "release"})
	if err != nil || d != nil {
		t.Fatalf("expected no deployment, got %+v err=%v", d, err)
	}
}

func TestSelector_PropagatesErrors(t *testing.T) {
	up := &fakeUpstream{deploymentErr: fmt.Errorf("wrapped: %w", cloudflare.ErrProjectNotFound)}
	_, err := NewSelector(up).Select(context.Background(), Query{ProjectName: "demo"})
	if !errors.Is(err, cloudflare.ErrProjectNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolve_ScenarioA_Passing(t *testing.T) {
	up := &fakeUpstream{deployments: []cloudflare.Deployment{{Status: "success"}}}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo"})

	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"passing","color":"green","cacheSeconds":60}`
	if got := string(res.Badge.JSON()); got != want {
		t.Fatalf("badge mismatch\nwant: %s\n got: %s", want, got)
	}
	if res.StatusCode != http.StatusOK || res.Outcome != OutcomeDeployment {
		t.Fatalf("unexpected status/outcome %d/%s", res.StatusCode, res.Outcome)
	}
	if up.projectCalls != 0 {
		t.Fatal("project lookup must not run when a deployment exists")
	}
}

func TestResolve_ScenarioB_EnvironmentLabel(t *testing.T) {
	up := &fakeUpstream{deployments: []cloudflare.Deployment{{Environment: "preview", Status: "building"}}}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo", ShowEnvironment: true})
	if res.Badge.Label != "Pages (preview)" || res.Badge.Message != "building" || res.Badge.Color != badge.ColorBlue {
		t.Fatalf("unexpected badge %+v", res.Badge)
	}
	if cacheSeconds(res.Badge) != 60 {
		t.Fatalf("expected cacheSeconds 60, got %d", cacheSeconds(res.Badge))
	}
}

func TestResolve_EnvironmentInference(t *testing.T) {
	tests := []struct {
		name string
		d    cloudflare.Deployment
		want string
	}{
		{"explicit", cloudflare.Deployment{Environment: "production", StageName: "preview"}, "Pages (production)"},
		{"from stage", cloudflare.Deployment{StageName: "deploy-prod"}, "Pages (production)"},
		{"defaults to preview", cloudflare.Deployment{StageName: "deploy"}, "Pages (preview)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.d.Status = "success"
			up := &fakeUpstream{deployments: []cloudflare.Deployment{tt.d}}
			res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo", ShowEnvironment: true})
			if res.Badge.Label != tt.want {
				t.Fatalf("expected label %q, got %q", tt.want, res.Badge.Label)
			}
		})
	}
}

func TestResolve_ScenarioC_MissingProject(t *testing.T) {
	up := &fakeUpstream{}
	res := NewResolver(up).Resolve(context.Background(), Query{})

	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"missing projectName","color":"inactive"}`
	if got := string(res.Badge.JSON()); got != want {
		t.Fatalf("badge mismatch\nwant: %s\n got: %s", want, got)
	}
	if res.StatusCode != http.StatusBadRequest || res.Outcome != OutcomeInvalid {
		t.Fatalf("unexpected status/outcome %d/%s", res.StatusCode, res.Outcome)
	}
	if up.listCalls != 0 || up.projectCalls != 0 {
		t.Fatal("no upstream call expected for an invalid query")
	}
}

func TestResolve_ScenarioD_ProjectFallback(t *testing.T) {
	up := &fakeUpstream{project: cloudflare.Project{Name: "demo", Status: "active"}}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo", ShowEnvironment: true})

	if res.StatusCode != http.StatusOK || res.Outcome != OutcomeProject {
		t.Fatalf("unexpected status/outcome %d/%s", res.StatusCode, res.Outcome)
	}
	if res.Badge.Message != "active" || res.Badge.Color != badge.ColorGreen || cacheSeconds(res.Badge) != 300 {
		t.Fatalf("unexpected badge %+v", res.Badge)
	}
	if res.Badge.Label != badge.DefaultLabel {
		t.Fatalf("project fallback always uses the default label, got %q", res.Badge.Label)
	}
	if up.listCalls != 1 || up.projectCalls != 1 {
		t.Fatalf("expected one call each, got list=%d project=%d", up.listCalls, up.projectCalls)
	}
}

func TestResolve_BranchWithoutMatchFallsBackToProject(t *testing.T) {
	up := &fakeUpstream{
		deployments: []cloudflare.Deployment{{Branch: "main", Status: "failure"}},
		project:     cloudflare.Project{Status: "paused"},
	}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo", Branch: "release"})
	if res.Outcome != OutcomeProject || res.Badge.Message != "paused" || res.Badge.Color != badge.ColorLightgrey {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_ScenarioE_NotFound(t *testing.T) {
	up := &fakeUpstream{deploymentErr: fmt.Errorf("list: %w", cloudflare.ErrProjectNotFound)}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo"})

	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"project not found","color":"lightgrey"}`
	if got := string(res.Badge.JSON()); got != want {
		t.Fatalf("badge mismatch\nwant: %s\n got: %s", want, got)
	}
	if res.StatusCode != http.StatusNotFound || res.Outcome != OutcomeNotFound || res.Err == nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if up.projectCalls != 0 {
		t.Fatal("project lookup must not run after a failed deployment lookup")
	}
}

func TestResolve_ScenarioF_UpstreamError(t *testing.T) {
	up := &fakeUpstream{deploymentErr: fmt.Errorf("list: %w", cloudflare.ErrUpstreamUnavailable)}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo"})

	want := `{"schemaVersion":1,"label":"Cloudflare Pages","message":"api error","color":"critical"}`
	if got := string(res.Badge.JSON()); got != want {
		t.Fatalf("badge mismatch\nwant: %s\n got: %s", want, got)
	}
	if res.StatusCode != http.StatusBadGateway || res.Outcome != OutcomeUpstreamError {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestResolve_ProjectLookupFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", cloudflare.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{"unavailable", cloudflare.ErrUpstreamUnavailable, http.StatusBadGateway, "api error"},
		{"unclassified", errors.New("boom"), http.StatusBadGateway, "api error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUpstream{projectErr: tt.err}
			res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo"})
			if res.StatusCode != tt.status || res.Badge.Message != tt.message {
				t.Fatalf("unexpected result %+v", res)
			}
			if res.Badge.CacheSeconds != nil {
				t.Fatal("error badges carry no cache hint")
			}
		})
	}
}

func TestResolve_UnknownStatusIsNotAnError(t *testing.T) {
	up := &fakeUpstream{deployments: []cloudflare.Deployment{{Status: "Skipped"}}}
	res := NewResolver(up).Resolve(context.Background(), Query{ProjectName: "demo"})
	if res.StatusCode != http.StatusOK || res.Badge.Message != "skipped" || res.Badge.Color != badge.ColorYellow {
		t.Fatalf("unexpected result %+v", res)
	}
}
