package veo

// Request describes one video generation.
type Request struct {
	// Prompt describes the desired video content.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Model is a name from Config.Models or a raw identifier.
	// Empty uses Config.DefaultModel.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// AspectRatio such as "16:9" or "9:16". Passed through unchecked.
	AspectRatio string `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`

	// Duration such as "5s" or "10s". Passed through unchecked.
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Data, when non-nil, is sent as the request body verbatim.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// aspectRatio returns the effective aspect ratio.
func (r *Request) aspectRatio() string {
	if r.AspectRatio == "" {
		return DefaultAspectRatio
	}
	return r.AspectRatio
}

// duration returns the effective duration.
func (r *Request) duration() string {
	if r.Duration == "" {
		return DefaultDuration
	}
	return r.Duration
}

// PredictRequest is the default predict body.
type PredictRequest struct {
	Instances  []Instance `json:"instances" jsonschema:"generation inputs, one per prompt"`
	Parameters Parameters `json:"parameters"`
}

// Instance is one unit of generation input.
type Instance struct {
	Prompt string `json:"prompt" jsonschema:"text describing the video"`
}

// Parameters control the generated output.
type Parameters struct {
	SampleCount    int    `json:"sampleCount" jsonschema:"number of videos to generate"`
	AspectRatio    string `json:"aspectRatio" jsonschema:"frame aspect ratio, e.g. 16:9"`
	Duration       string `json:"duration" jsonschema:"clip length, e.g. 5s"`
	OutputMIMEType string `json:"outputMimeType" jsonschema:"container format of the result"`
}

// Video is a generated clip.
type Video struct {
	// Data is the decoded video bytes.
	Data []byte

	// MIMEType is the requested output type.
	MIMEType string

	// Model is the identifier that produced the video.
	Model string
}
