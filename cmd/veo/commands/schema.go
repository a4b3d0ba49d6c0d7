package commands

import (
	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/cli"
	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the default predict body",
	Long: `Print the JSON schema of the body sent when no --payload is given.
Use it as a starting point for custom payloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := veo.RequestSchema()
		if err != nil {
			return err
		}
		return cli.Output(schema, cli.OutputOptions{
			Format: cli.FormatJSON,
			Indent: "  ",
			Writer: cmd.OutOrStdout(),
		})
	},
}
