package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/cli"
	"github.com/vivekmathapati01/google-clients/pkg/history"
)

const appName = "veo"

var (
	// Global flags
	cfgFile     string
	contextName string
	envFile     string
	outputJSON  bool
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "veo",
	Short: "Google Veo video generation CLI",
	Long: `Veo CLI - generate videos with Google's Veo models on Vertex AI.

Configuration is stored in ~/.google-clients/veo/ and supports multiple
contexts, similar to kubectl's context management. GOOGLE_GENAI_API_KEY,
GOOGLE_GENAI_PROJECT_ID, GOOGLE_GENAI_LOCATION, GOOGLE_GENAI_BASE_URL and
GOOGLE_GENAI_MODEL override the selected context.

Examples:
  # Set up a new context
  veo config add-context dev --api-key KEY --project-id my-proj --location us-central1

  # Generate the sample video into test_video.mp4
  veo generate

  # Generate with a custom prompt and model
  veo generate "A fox running through snow" --model veo-3.0 --aspect-ratio 9:16
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.google-clients/veo/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: ./.env if present)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := cli.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: env file: %v\n", err)
	}

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns a copy of the selected context with environment
// overrides applied. Without any configured context the environment alone
// is used.
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			if envCtx, ok := cli.EnvContext(); ok {
				return envCtx, nil
			}
			return nil, fmt.Errorf("no context specified. Use -c flag, set a default context with 'veo config use-context', or export %s", cli.EnvAPIKey)
		}
		return nil, err
	}

	c := *ctx
	cli.ApplyEnv(&c)
	return &c, nil
}

// openHistory opens the generation history next to the config file.
func openHistory() (*history.Store, error) {
	var dir string
	if cfgFile == "" {
		paths, err := cli.NewPaths(appName)
		if err != nil {
			return nil, err
		}
		if err := paths.EnsureHistoryDir(); err != nil {
			return nil, err
		}
		dir = paths.HistoryDir()
	} else {
		dir = filepath.Join(getConfig().Dir(), "data", "history")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return history.Open(history.Options{Dir: dir, Logger: slog.Default()})
}

// isJSONOutput returns whether output should be JSON
func isJSONOutput() bool {
	return outputJSON
}

// outputResult outputs the result using cli package
func outputResult(result any, query string) error {
	format := cli.FormatYAML
	if outputJSON || query != "" {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		Query:  query,
		Writer: cli.Stdout,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
