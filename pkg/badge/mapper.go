package badge

import "strings"

var deploymentClasses = []struct {
	tokens []string
	result Mapping
}{
	{[]string{"success", "succeeded", "completed"}, Mapping{Message: "passing", Color: ColorGreen}},
	{[]string{"building", "in_progress", "queued", "pending", "running"}, Mapping{Message: "building", Color: ColorBlue}},
	{[]string{"canceled", "cancelled"}, Mapping{Message: "canceled", Color: ColorLightgrey}},
	{[]string{"failed", "failure", "error", "errored"}, Mapping{Message: "failing", Color: ColorRed}},
}

// MapDeploymentStatus maps an upstream deployment status onto the badge vocabulary.
// Tokens are compared case-insensitively and must match exactly. Anything unrecognized
// is passed through lower-cased with a yellow color, and an empty input becomes "unknown".
func MapDeploymentStatus(raw string) Mapping {
	t := strings.ToLower(raw)
	for _, class := range deploymentClasses {
		for _, token := range class.tokens {
			if t == token {
				return class.result
			}
		}
	}
	return fallback(t)
}

// MapProjectStatus maps a project-level status, used when a project has no deployments.
func MapProjectStatus(raw string) Mapping {
	t := strings.ToLower(raw)
	switch t {
	case "active":
		return Mapping{Message: "active", Color: ColorGreen}
	case "disabled", "paused", "suspended":
		return Mapping{Message: t, Color: ColorLightgrey}
	}
	return fallback(t)
}

func fallback(t string) Mapping {
	if t == "" {
		t = "unknown"
	}
	return Mapping{Message: t, Color: ColorYellow}
}
