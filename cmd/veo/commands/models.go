package commands

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

type modelEntry struct {
	Name    string `json:"name" yaml:"name"`
	ID      string `json:"id" yaml:"id"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List model names and identifiers",
	Long: `List the model names accepted by --model and the identifiers they
resolve to. Contexts may override the built-in table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := veo.Config{}
		if ctx, err := getContext(); err == nil {
			cfg = ctx.VeoConfig()
		}
		entries := modelEntries(cfg)

		if isJSONOutput() {
			return outputResult(entries, "")
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DEFAULT\tNAME\tID")
		for _, e := range entries {
			mark := ""
			if e.Default {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", mark, e.Name, e.ID)
		}
		return w.Flush()
	},
}

// modelEntries returns the effective model table sorted by name.
func modelEntries(cfg veo.Config) []modelEntry {
	models := cfg.ModelMap()
	defaultID := cfg.ModelID("")
	entries := make([]modelEntry, 0, len(models))
	for _, name := range slices.Sorted(maps.Keys(models)) {
		entries = append(entries, modelEntry{
			Name:    name,
			ID:      models[name],
			Default: models[name] == defaultID,
		})
	}
	return entries
}
