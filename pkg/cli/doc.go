// Package cli provides the shared plumbing behind the veo command-line tool.
//
// This package includes:
//   - Context configuration (API key, project, location, model map)
//   - Environment overrides loaded from .env files
//   - Request and payload file loading (YAML/JSON)
//   - Output formatting (YAML, JSON, raw) and jq filtering
//   - Styled status lines for the terminal
//
// Configuration is stored in ~/.google-clients/<app>/ and supports multiple
// contexts similar to kubectl.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("veo")
//	ctx, err := cfg.ResolveContext("")
//	cli.ApplyEnv(ctx)
//	client := veo.NewClient(ctx.VeoConfig())
package cli
