package resolve

import (
	"net/url"
	"strings"

	"github.com/loykin/pagesbadge/internal/constants"
)

// Query is the immutable per-request input of a resolution.
type Query struct {
	ProjectName     string
	Branch          string
	ShowEnvironment bool
}

// QueryFromValues reads projectName, branch and showEnv from URL query values.
// An empty branch means no branch filter; showEnv is enabled only by "true" in any case.
func QueryFromValues(v url.Values) Query {
	return Query{
		ProjectName:     v.Get(constants.QueryProjectName),
		Branch:          v.Get(constants.QueryBranch),
		ShowEnvironment: strings.EqualFold(v.Get(constants.QueryShowEnv), "true"),
	}
}
