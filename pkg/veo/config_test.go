package veo

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_ModelID(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{"default", Config{}, "", ModelVeo20},
		{"known name", Config{}, "veo-3.0-fast", ModelVeo30Fast},
		{"raw identifier", Config{}, "veo-9.9-generate-999", "veo-9.9-generate-999"},
		{"config default name", Config{DefaultModel: "veo-3.0"}, "", ModelVeo30},
		{"config default id", Config{DefaultModel: "custom-id"}, "", "custom-id"},
		{"custom map", Config{Models: map[string]string{"fast": "x-fast"}}, "fast", "x-fast"},
		{"custom map hides defaults", Config{Models: map[string]string{"fast": "x-fast"}}, "veo-2.0", "veo-2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ModelID(tt.in); got != tt.want {
				t.Errorf("ModelID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfig_ModelMapIsCopy(t *testing.T) {
	cfg := Config{}
	m := cfg.ModelMap()
	m["veo-2.0"] = "changed"
	if DefaultModels["veo-2.0"] != ModelVeo20 {
		t.Fatal("ModelMap returned the shared default map")
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{APIKey: "k", ProjectID: "p", Location: "l"}).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	err := Config{APIKey: "k"}.Validate()
	if !errors.Is(err, ErrIncompleteConfig) {
		t.Fatalf("Validate = %v, want ErrIncompleteConfig", err)
	}
}

func TestClient_Endpoint(t *testing.T) {
	c := NewClient(Config{
		APIKey:    "abc",
		ProjectID: "my-project",
		Location:  "us-central1",
	})

	want := "https://us-central1-aiplatform.googleapis.com/v1/projects/my-project/locations/us-central1/publishers/google/models/veo-2.0-generate-001:predict?key=abc"
	if got := c.Endpoint(""); got != want {
		t.Errorf("Endpoint() =\n%s\nwant\n%s", got, want)
	}

	masked := c.MaskedEndpoint("veo-3.0")
	wantMasked := "https://us-central1-aiplatform.googleapis.com/v1/projects/my-project/locations/us-central1/publishers/google/models/veo-3.0-generate-001:predict?key=***"
	if masked != wantMasked {
		t.Errorf("MaskedEndpoint() = %s, want %s", masked, wantMasked)
	}

	c = NewClient(Config{APIKey: "a+b/c", ProjectID: "p", Location: "l"})
	if got := c.Endpoint(""); !strings.HasSuffix(got, ":predict?key=a%2Bb%2Fc") {
		t.Errorf("Endpoint() did not escape key: %s", got)
	}
	if got := c.MaskedEndpoint(""); !strings.HasSuffix(got, ":predict?key=***") {
		t.Errorf("MaskedEndpoint() = %s", got)
	}
}

func TestClient_EndpointCustomBase(t *testing.T) {
	c := NewClient(Config{
		APIKey:    "k",
		ProjectID: "p",
		Location:  "europe-west4",
		BaseURL:   "https://{LOCATION}.example.com/api/{LOCATION}/projects/",
	})

	want := "https://europe-west4.example.com/api/europe-west4/projects/p/locations/europe-west4/publishers/google/models/m:predict?key=k"
	if got := c.Endpoint("m"); got != want {
		t.Errorf("Endpoint() = %s, want %s", got, want)
	}
}

func TestRequestDefaults(t *testing.T) {
	body, ok := BuildRequestBody(&Request{Prompt: "p"}).(*PredictRequest)
	if !ok {
		t.Fatal("BuildRequestBody did not return *PredictRequest")
	}
	if body.Parameters.AspectRatio != DefaultAspectRatio || body.Parameters.Duration != DefaultDuration {
		t.Errorf("parameters = %+v", body.Parameters)
	}
	if body.Parameters.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", body.Parameters.SampleCount)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 10); got != "héllo" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("héllo", 2); got != "hé..." {
		t.Errorf("truncate long = %q", got)
	}
}

func TestRequestSchema(t *testing.T) {
	s, err := RequestSchema()
	if err != nil {
		t.Fatalf("RequestSchema: %v", err)
	}
	for _, prop := range []string{"instances", "parameters"} {
		if s.Properties[prop] == nil {
			t.Errorf("schema missing property %q", prop)
		}
	}
}
