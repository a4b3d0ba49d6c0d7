package commands

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/cli"
	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple projects and API keys,
similar to kubectl's context management.

Configuration is stored in ~/.google-clients/veo/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  veo config add-context dev --api-key KEY --project-id my-proj --location us-central1
  veo config add-context eu --api-key KEY --project-id my-proj --location europe-west4 \
      --default-model veo-3.0 --model veo-next=veo-3.1-generate-preview`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		apiKey, err := cmd.Flags().GetString("api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'api-key' flag: %w", err)
		}
		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}
		projectID, err := cmd.Flags().GetString("project-id")
		if err != nil {
			return fmt.Errorf("failed to read 'project-id' flag: %w", err)
		}
		location, err := cmd.Flags().GetString("location")
		if err != nil {
			return fmt.Errorf("failed to read 'location' flag: %w", err)
		}
		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			return fmt.Errorf("failed to read 'base-url' flag: %w", err)
		}
		defaultModel, err := cmd.Flags().GetString("default-model")
		if err != nil {
			return fmt.Errorf("failed to read 'default-model' flag: %w", err)
		}
		timeout, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return fmt.Errorf("failed to read 'timeout' flag: %w", err)
		}
		modelFlags, err := cmd.Flags().GetStringArray("model")
		if err != nil {
			return fmt.Errorf("failed to read 'model' flag: %w", err)
		}
		models, err := parseModelFlags(modelFlags)
		if err != nil {
			return err
		}

		ctx := &cli.Context{
			APIKey:       apiKey,
			ProjectID:    projectID,
			Location:     location,
			BaseURL:      baseURL,
			DefaultModel: defaultModel,
			Models:       models,
			Timeout:      timeout,
		}
		if err := ctx.VeoConfig().Validate(); err != nil {
			return err
		}

		cfg := getConfig()
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}
		if cfg.CurrentContext == "" {
			if err := cfg.UseContext(name); err != nil {
				return err
			}
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

// parseModelFlags turns name=id pairs into a model map. Built-in names are
// kept unless overridden.
func parseModelFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	models := make(map[string]string, len(veo.DefaultModels)+len(pairs))
	maps.Copy(models, veo.DefaultModels)
	for _, p := range pairs {
		name, id, ok := strings.Cut(p, "=")
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("invalid --model %q, expected name=id", p)
		}
		models[name] = id
	}
	return models, nil
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.UseContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.CurrentContext == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No current context set")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if len(cfg.Contexts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tPROJECT\tLOCATION\tDEFAULT_MODEL")

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			defaultModel := ctx.DefaultModel
			if defaultModel == "" {
				defaultModel = "(default)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", current, name, ctx.ProjectID, ctx.Location, defaultModel)
		}

		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Config file: %s\n", cfg.Path())
		fmt.Fprintf(out, "Current context: %s\n", cfg.CurrentContext)
		fmt.Fprintf(out, "Contexts: %d\n", len(cfg.Contexts))

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			fmt.Fprintf(out, "\n  %s:\n", name)
			fmt.Fprintf(out, "    API Key: %s\n", cli.MaskAPIKey(ctx.APIKey))
			fmt.Fprintf(out, "    Project: %s\n", ctx.ProjectID)
			fmt.Fprintf(out, "    Location: %s\n", ctx.Location)
			if ctx.BaseURL != "" {
				fmt.Fprintf(out, "    Base URL: %s\n", ctx.BaseURL)
			}
			if ctx.DefaultModel != "" {
				fmt.Fprintf(out, "    Default Model: %s\n", ctx.DefaultModel)
			}
			if ctx.Timeout > 0 {
				fmt.Fprintf(out, "    Timeout: %ds\n", ctx.Timeout)
			}
			if len(ctx.Models) > 0 {
				fmt.Fprintf(out, "    Models: %d\n", len(ctx.Models))
			}
		}

		if _, ok := cli.EnvContext(); ok {
			fmt.Fprintln(os.Stderr, "\nNote: GOOGLE_GENAI_* environment variables override these settings.")
		}
		return nil
	},
}

func init() {
	configAddContextCmd.Flags().String("api-key", "", "API key (required)")
	configAddContextCmd.Flags().String("project-id", "", "Google Cloud project ID (required)")
	configAddContextCmd.Flags().String("location", "", "Region, e.g. us-central1 (required)")
	configAddContextCmd.Flags().String("base-url", "", "Endpoint template; {LOCATION} is substituted")
	configAddContextCmd.Flags().String("default-model", "", "Default model name or identifier")
	configAddContextCmd.Flags().Int("timeout", 0, "Request timeout in seconds (0 for none)")
	configAddContextCmd.Flags().StringArray("model", nil, "Model mapping name=id (repeatable)")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
