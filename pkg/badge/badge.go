package badge

import "encoding/json"

// SchemaVersion is the only version of the Shields.io endpoint schema.
const SchemaVersion = 1

// DefaultLabel is used unless the caller asks for an environment-qualified label.
const DefaultLabel = "Cloudflare Pages"

// Color is a named Shields.io color.
type Color string

const (
	ColorGreen     Color = "green"
	ColorBlue      Color = "blue"
	ColorLightgrey Color = "lightgrey"
	ColorRed       Color = "red"
	ColorYellow    Color = "yellow"
	ColorInactive  Color = "inactive"
	ColorCritical  Color = "critical"
)

// Descriptor is the Shields.io "endpoint" payload.
// CacheSeconds is nil for error badges so the renderer falls back to its own default.
type Descriptor struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         Color  `json:"color"`
	CacheSeconds  *int   `json:"cacheSeconds,omitempty"`
}

// Mapping is the message/color pair produced by the status mappers.
type Mapping struct {
	Message string
	Color   Color
}

// New builds a descriptor from a mapping. A negative cacheSeconds omits the hint.
func New(label string, m Mapping, cacheSeconds int) Descriptor {
	d := Descriptor{
		SchemaVersion: SchemaVersion,
		Label:         label,
		Message:       m.Message,
		Color:         m.Color,
	}
	if cacheSeconds >= 0 {
		cs := cacheSeconds
		d.CacheSeconds = &cs
	}
	return d
}

// Error builds an error badge with the default label and no cache hint.
func Error(message string, color Color) Descriptor {
	return New(DefaultLabel, Mapping{Message: message, Color: color}, -1)
}

// EnvironmentLabel returns the label used when environment display is requested.
func EnvironmentLabel(environment string) string {
	return "Pages (" + environment + ")"
}

// JSON encodes the descriptor. Encoding a Descriptor cannot fail.
func (d Descriptor) JSON() []byte {
	b, _ := json.Marshal(d)
	return b
}
