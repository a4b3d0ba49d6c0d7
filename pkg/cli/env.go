package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override context settings.
const (
	EnvAPIKey    = "GOOGLE_GENAI_API_KEY"
	EnvProjectID = "GOOGLE_GENAI_PROJECT_ID"
	EnvLocation  = "GOOGLE_GENAI_LOCATION"
	EnvBaseURL   = "GOOGLE_GENAI_BASE_URL"
	EnvModel     = "GOOGLE_GENAI_MODEL"
)

// LoadEnvFile loads variables from path into the process environment
// without overriding variables that are already set. An empty path loads
// ./.env if it exists.
func LoadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides ctx fields with any GOOGLE_GENAI_* variables that are
// set. It reports whether anything was overridden.
func ApplyEnv(ctx *Context) bool {
	changed := false
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
			changed = true
		}
	}
	set(&ctx.APIKey, EnvAPIKey)
	set(&ctx.ProjectID, EnvProjectID)
	set(&ctx.Location, EnvLocation)
	set(&ctx.BaseURL, EnvBaseURL)
	set(&ctx.DefaultModel, EnvModel)
	return changed
}

// EnvContext builds a context purely from the environment, for runs
// without a configured context.
func EnvContext() (*Context, bool) {
	ctx := &Context{Name: "(env)"}
	if !ApplyEnv(ctx) {
		return nil, false
	}
	return ctx, true
}
