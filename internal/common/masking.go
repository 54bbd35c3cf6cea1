package common

import (
	"log/slog"
	"regexp"
	"strings"
)

const maskedValue = "***MASKED***"

// SensitivePattern matches a credential inside free text, or names attribute keys
// whose whole value is a credential.
type SensitivePattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Keys        []string
}

// DefaultSensitivePatterns covers the Cloudflare API token in its usual disguises.
var DefaultSensitivePatterns = []SensitivePattern{
	{
		Name:        "bearer_token",
		Regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		Replacement: "Bearer " + maskedValue,
	},
	{
		Name:        "api_token",
		Regex:       regexp.MustCompile(`(?i)(api[_-]?token|access[_-]?token|token)(["'\s]*[:=]["'\s]*)([^"',}\]\s]+)`),
		Replacement: "${1}${2}" + maskedValue,
		Keys:        []string{"api_token", "apitoken", "token", "access_token", "cloudflare_api_token"},
	},
	{
		Name:        "authorization",
		Regex:       regexp.MustCompile(`(?i)(authorization)(["'\s]*[:=]["'\s]*)([^"',}\]\s]+)`),
		Replacement: "${1}${2}" + maskedValue,
		Keys:        []string{"authorization"},
	},
}

// Masker redacts credentials from log attributes.
type Masker struct {
	patterns []SensitivePattern
	enabled  bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return &Masker{patterns: append([]SensitivePattern(nil), DefaultSensitivePatterns...), enabled: true}
}

// SetEnabled enables or disables masking
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// AddLiteral masks every occurrence of a known secret value, e.g. the configured token.
func (m *Masker) AddLiteral(name, secret string) {
	if strings.TrimSpace(secret) == "" {
		return
	}
	m.patterns = append(m.patterns, SensitivePattern{
		Name:        name,
		Regex:       regexp.MustCompile(regexp.QuoteMeta(secret)),
		Replacement: maskedValue,
	})
}

// MaskString masks sensitive information in a string
func (m *Masker) MaskString(input string) string {
	if !m.enabled {
		return input
	}
	result := input
	for _, p := range m.patterns {
		if p.Regex != nil {
			result = p.Regex.ReplaceAllString(result, p.Replacement)
		}
	}
	return result
}

// IsSensitiveKey reports whether an attribute key always carries a credential
func (m *Masker) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range m.patterns {
		for _, k := range p.Keys {
			if lower == k {
				return true
			}
		}
	}
	return false
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook.
func (m *Masker) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if !m.enabled {
		return a
	}
	if m.IsSensitiveKey(a.Key) {
		return slog.String(a.Key, maskedValue)
	}
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, m.MaskString(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, m.MaskString(err.Error()))
		}
	}
	return a
}
