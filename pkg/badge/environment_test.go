package badge

import "testing"

func TestInferEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		stage     string
		want      string
		wantFound bool
	}{
		{"explicit wins", "Production", "preview-deploy", "Production", true},
		{"explicit custom value", "staging", "", "staging", true},
		{"stage preview", "", "Preview_Build", "preview", true},
		{"stage production", "", "PRODUCTION", "production", true},
		{"stage prod", "", "deploy-prod", "production", true},
		{"preview checked first", "", "prod-preview", "preview", true},
		{"ambiguous stage", "", "deploy", "", false},
		{"nothing", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferEnvironment(tt.env, tt.stage)
			if got != tt.want || ok != tt.wantFound {
				t.Fatalf("InferEnvironment(%q, %q) = (%q, %v), want (%q, %v)", tt.env, tt.stage, got, ok, tt.want, tt.wantFound)
			}
		})
	}
}
