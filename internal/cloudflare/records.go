package cloudflare

import "github.com/tidwall/gjson"

// statusPaths lists where a deployment status may live, highest priority first.
var statusPaths = []string{
	"deployment_trigger.metadata.status",
	"latest_stage.status",
	"status",
}

const unknownStatus = "unknown"

// Deployment is the projection of one upstream deployment record used for badges.
// Absent fields are left empty; Status is always set.
type Deployment struct {
	ID          string
	Environment string
	Status      string
	Branch      string
	StageName   string
	CreatedOn   string
}

// Project is the projection of the upstream project record.
type Project struct {
	Name   string
	Status string
}

// ParseDeployment projects a raw deployment object. It never fails: missing or
// mistyped fields simply stay empty.
func ParseDeployment(r gjson.Result) Deployment {
	d := Deployment{
		ID:          stringField(r, "id"),
		Environment: stringField(r, "environment"),
		Branch:      stringField(r, "deployment_trigger.metadata.branch"),
		StageName:   stringField(r, "latest_stage.name"),
		CreatedOn:   stringField(r, "created_on"),
		Status:      unknownStatus,
	}
	if v, ok := firstPresent(r, statusPaths...); ok {
		d.Status = v
	}
	return d
}

// parseDeployments reads the result array of a list response. A missing or
// non-array result is treated as an empty list.
func parseDeployments(body []byte) []Deployment {
	result := gjson.GetBytes(body, "result")
	if !result.IsArray() {
		return nil
	}
	items := result.Array()
	out := make([]Deployment, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		out = append(out, ParseDeployment(item))
	}
	return out
}

// parseProject reads a project response. The status is the first non-empty scalar of
// result.source and result.status, defaulting to "active". Structured values (Cloudflare
// reports source as an object describing the git provider) are not descriptive and are skipped.
func parseProject(body []byte) Project {
	result := gjson.GetBytes(body, "result")
	p := Project{Name: stringField(result, "name"), Status: "active"}
	for _, path := range []string{"source", "status"} {
		if v := scalarField(result, path); v != "" {
			p.Status = v
			break
		}
	}
	return p
}

// firstPresent returns the first path holding a non-null value. An empty string
// counts as present, matching a null-coalescing lookup.
func firstPresent(r gjson.Result, paths ...string) (string, bool) {
	for _, p := range paths {
		v := r.Get(p)
		if v.Exists() && v.Type != gjson.Null {
			return v.String(), true
		}
	}
	return "", false
}

func stringField(r gjson.Result, path string) string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// scalarField renders strings, numbers and booleans as text; objects, arrays and null are empty.
func scalarField(r gjson.Result, path string) string {
	v := r.Get(path)
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String()
	}
	return ""
}

// errorMessages extracts errors[].message from a Cloudflare envelope.
func errorMessages(body []byte) []string {
	if !gjson.ValidBytes(body) {
		return nil
	}
	var msgs []string
	gjson.GetBytes(body, "errors.#.message").ForEach(func(_, v gjson.Result) bool {
		if s := v.String(); s != "" {
			msgs = append(msgs, s)
		}
		return true
	})
	return msgs
}
