package veo

import (
	"errors"
	"maps"
	"strings"
)

const (
	// DefaultBaseURL is the Vertex AI projects URL template. The {LOCATION}
	// placeholder is replaced with Config.Location.
	DefaultBaseURL = "https://{LOCATION}-aiplatform.googleapis.com/v1/projects"

	// LocationPlaceholder is substituted in Config.BaseURL.
	LocationPlaceholder = "{LOCATION}"

	// DefaultAspectRatio is used when Request.AspectRatio is empty.
	DefaultAspectRatio = "16:9"

	// DefaultDuration is used when Request.Duration is empty.
	DefaultDuration = "5s"

	// OutputMIMEType is the output format requested in default payloads.
	OutputMIMEType = "video/mp4"
)

// Config holds the API settings for a Client.
type Config struct {
	// APIKey is sent as the key query parameter.
	APIKey string `json:"api_key" yaml:"api_key"`

	// ProjectID is the Google Cloud project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Location is the region, e.g. "us-central1".
	Location string `json:"location" yaml:"location"`

	// BaseURL is the endpoint template. Defaults to DefaultBaseURL.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Models maps friendly names to model identifiers.
	// Defaults to DefaultModels.
	Models map[string]string `json:"models,omitempty" yaml:"models,omitempty"`

	// DefaultModel is a name or identifier used when a request has none.
	// Defaults to DefaultModelName.
	DefaultModel string `json:"default_model,omitempty" yaml:"default_model,omitempty"`
}

// ErrIncompleteConfig is returned by Validate.
var ErrIncompleteConfig = errors.New("veo: incomplete config")

// Validate reports whether the settings needed to build an endpoint are set.
func (c Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if c.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return errors.Join(ErrIncompleteConfig, errors.New("missing "+strings.Join(missing, ", ")))
	}
	return nil
}

// ModelID resolves a model name through Models. Names that are not in the
// map are returned unchanged so callers can pass raw identifiers. An empty
// name resolves DefaultModel.
func (c Config) ModelID(name string) string {
	if name == "" {
		name = c.DefaultModel
		if name == "" {
			name = DefaultModelName
		}
	}
	if id, ok := c.models()[name]; ok {
		return id
	}
	return name
}

// ModelMap returns a copy of the effective name to identifier map.
func (c Config) ModelMap() map[string]string {
	return maps.Clone(c.models())
}

func (c Config) models() map[string]string {
	if len(c.Models) == 0 {
		return DefaultModels
	}
	return c.Models
}

// baseURL returns the base URL with the location substituted.
func (c Config) baseURL() string {
	tmpl := c.BaseURL
	if tmpl == "" {
		tmpl = DefaultBaseURL
	}
	return strings.TrimRight(strings.ReplaceAll(tmpl, LocationPlaceholder, c.Location), "/")
}
