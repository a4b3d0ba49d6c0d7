package veo

// Model identifiers published for the predict endpoint.
const (
	ModelVeo20        = "veo-2.0-generate-001"
	ModelVeo30        = "veo-3.0-generate-001"
	ModelVeo30Fast    = "veo-3.0-fast-generate-001"
	ModelVeo30Preview = "veo-3.0-generate-preview"
	ModelVeo31Preview = "veo-3.1-generate-preview"
)

// DefaultModelName is the model used when neither the request nor the
// config names one.
const DefaultModelName = "veo-2.0"

// DefaultModels is the name to identifier map used when Config.Models is
// empty.
var DefaultModels = map[string]string{
	"veo-2.0":         ModelVeo20,
	"veo-3.0":         ModelVeo30,
	"veo-3.0-fast":    ModelVeo30Fast,
	"veo-3.0-preview": ModelVeo30Preview,
	"veo-3.1-preview": ModelVeo31Preview,
}
