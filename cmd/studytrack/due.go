package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/service/stats"
)

func newDueCmd() *cobra.Command {
	var topic, prefix string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List cards due for review",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			now := clock()
			snap := a.Reviews.Snapshot()

			var ids []string
			if topic != "" {
				ids = stats.DueCardIDsByTopic(snap, now, topic)
			} else {
				ids = stats.DueCardIDs(snap, now, prefix)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No cards due.")
				return nil
			}

			fmt.Fprintf(out, "%d cards due:\n\n", len(ids))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTopic\tState\tDue")
			for _, id := range ids {
				c := snap.CardStates[id]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, c.Topic, c.State, c.Due.In(a.Location).Format("2006-01-02 15:04"))
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "only cards of this topic")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "only card ids with this prefix")
	cmd.MarkFlagsMutuallyExclusive("topic", "prefix")
	return cmd
}
