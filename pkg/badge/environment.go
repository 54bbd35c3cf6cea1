package badge

import "strings"

const (
	EnvironmentPreview    = "preview"
	EnvironmentProduction = "production"
)

// InferEnvironment returns the explicit environment when set, otherwise guesses it from
// the deployment stage name. ok is false when neither gives an answer; callers default
// to EnvironmentPreview.
func InferEnvironment(environment, stageName string) (env string, ok bool) {
	if environment != "" {
		return environment, true
	}
	stage := strings.ToLower(stageName)
	switch {
	case strings.Contains(stage, "preview"):
		return EnvironmentPreview, true
	case strings.Contains(stage, "production"), strings.Contains(stage, "prod"):
		return EnvironmentProduction, true
	}
	return "", false
}
