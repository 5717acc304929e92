package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/stats"
)

type statsReport struct {
	Dashboard   domain.Dashboard
	Topics      []domain.TopicStats
	StudyStreak int
}

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the study dashboard",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			now := clock()
			snap := a.Reviews.Snapshot()
			report := statsReport{
				Dashboard: stats.BuildDashboard(stats.DashboardInput{
					Reviews:  snap,
					Problems: a.Problems.Problems(),
					Now:      now,
					Location: a.Location,
				}),
				Topics:      stats.TopicProgress(a.Cards, snap, now),
				StudyStreak: a.Progress.Streak(now),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printStats(cmd.OutOrStdout(), report)
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	return cmd
}

func printStats(out io.Writer, r statsReport) error {
	d := r.Dashboard
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Cards\t%d (new %d, learning %d, review %d, relearning %d)\n",
		d.Stats.Total, d.Stats.New, d.Stats.Learning, d.Stats.Review, d.Stats.Relearning)
	fmt.Fprintf(w, "Due now\t%d\n", d.Stats.Due)
	fmt.Fprintf(w, "Retention\t%d%%\n", d.Stats.RetentionRate)
	fmt.Fprintf(w, "Reviews today\t%d\n", d.ReviewsToday)
	fmt.Fprintf(w, "Review streak\t%d days\n", d.ReviewStreak)
	fmt.Fprintf(w, "Study streak\t%d days\n", r.StudyStreak)
	fmt.Fprintf(w, "Problem streak\t%d days\n", d.ProblemStreak)
	fmt.Fprintf(w, "Bookmarks\t%d\n", d.Bookmarks)
	fmt.Fprintf(w, "Grades\tagain %d, hard %d, good %d, easy %d\n", d.Grades.Again, d.Grades.Hard, d.Grades.Good, d.Grades.Easy)
	fmt.Fprintf(w, "Problems\teasy %d, medium %d, hard %d\n", d.ByDifficulty.Easy, d.ByDifficulty.Medium, d.ByDifficulty.Hard)
	for _, p := range slices.Sorted(maps.Keys(d.ByPattern)) {
		fmt.Fprintf(w, "  %s\t%d\n", p, d.ByPattern[p])
	}

	if len(r.Topics) > 0 {
		fmt.Fprintln(w, "\nTopic\tCards\tReviewed\tDue\tDone")
		for _, t := range r.Topics {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\n", t.Topic, t.Total, t.Reviewed, t.Due, t.Percent)
		}
	}
	if len(d.ReviewProgress) > 0 {
		fmt.Fprintln(w, "\nDate\tReviews")
		for _, dc := range d.ReviewProgress {
			fmt.Fprintf(w, "%s\t%d\n", dc.Date, dc.Count)
		}
	}
	return w.Flush()
}
