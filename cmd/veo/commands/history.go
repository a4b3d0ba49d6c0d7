package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/cli"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past generations",
	Long: `Inspect the local log of generate runs.

History is stored in ~/.google-clients/veo/data/history.`,
}

var historyListOpts struct {
	limit int
	query string
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent generations, newest first",
	Long: `List recent generations, newest first.

Examples:
  veo history list --limit 5
  veo history list --query '.[] | select(.status == "failed") | .id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(cmd.Context(), historyListOpts.limit)
		if err != nil {
			return err
		}

		if isJSONOutput() || historyListOpts.query != "" {
			return outputResult(records, historyListOpts.query)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No generations recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tMODEL\tSIZE\tPROMPT")
		for _, r := range records {
			size := "-"
			if r.Bytes > 0 {
				size = cli.FormatBytes(r.Bytes)
			}
			status := r.Status
			if r.ErrorKind != "" {
				status += " (" + r.ErrorKind + ")"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.CreatedAt.Local().Format(time.DateTime), status, r.Model, size, ellipsize(r.Prompt, 40))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return outputResult(rec, "")
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete one generation record",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Deleted %s", args[0])
		return nil
	},
}

func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyListCmd.Flags().IntVarP(&historyListOpts.limit, "limit", "n", 20, "maximum records to show (0 for all)")
	historyListCmd.Flags().StringVarP(&historyListOpts.query, "query", "q", "", "jq expression applied to the records")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
