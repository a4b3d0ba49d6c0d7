package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".google-clients"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config is the on-disk configuration of a CLI app.
type Config struct {
	// AppName is the application name (e.g., "veo")
	AppName string `yaml:"-"`

	// CurrentContext is the name of the active context
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts maps context names to their settings
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	configPath string
}

// Context is one named set of API settings.
type Context struct {
	Name string `yaml:"name"`

	// APIKey is the static API key.
	APIKey string `yaml:"api_key,omitempty"`

	// ProjectID is the Google Cloud project.
	ProjectID string `yaml:"project_id,omitempty"`

	// Location is the region, e.g. us-central1.
	Location string `yaml:"location,omitempty"`

	// BaseURL is the endpoint template; {LOCATION} is substituted.
	BaseURL string `yaml:"base_url,omitempty"`

	// DefaultModel is a model name or identifier.
	DefaultModel string `yaml:"default_model,omitempty"`

	// Models overrides the built-in name to identifier map.
	Models map[string]string `yaml:"models,omitempty"`

	// Timeout is the HTTP timeout in seconds, 0 for none.
	Timeout int `yaml:"timeout,omitempty"`
}

// LoadConfig loads or creates configuration for the specified app
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from customPath, or from
// ~/.google-clients/<app>/config.yaml when customPath is empty. A missing
// file is created empty.
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Contexts:   make(map[string]*Context),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	for name, ctx := range cfg.Contexts {
		if ctx == nil {
			ctx = &Context{}
			cfg.Contexts[name] = ctx
		}
		ctx.Name = name
	}
	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save writes the configuration to disk. The file holds API keys, so it is
// written with mode 0600.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddContext adds or replaces a context and saves.
func (c *Config) AddContext(name string, ctx *Context) error {
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context and saves. Deleting the current context
// clears CurrentContext.
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext sets the current context and saves.
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// GetCurrentContext returns the current context
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}
	return c.GetContext(c.CurrentContext)
}

// ResolveContext returns the context by name, or current context if name is empty
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name == "" {
		return c.GetCurrentContext()
	}
	return c.GetContext(name)
}

// ListContexts returns all context names in sorted order.
func (c *Config) ListContexts() []string {
	return slices.Sorted(maps.Keys(c.Contexts))
}

// VeoConfig converts the context into client settings.
func (ctx *Context) VeoConfig() veo.Config {
	return veo.Config{
		APIKey:       ctx.APIKey,
		ProjectID:    ctx.ProjectID,
		Location:     ctx.Location,
		BaseURL:      ctx.BaseURL,
		Models:       maps.Clone(ctx.Models),
		DefaultModel: ctx.DefaultModel,
	}
}

// TimeoutDuration returns Timeout as a time.Duration.
func (ctx *Context) TimeoutDuration() time.Duration {
	return time.Duration(ctx.Timeout) * time.Second
}

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
