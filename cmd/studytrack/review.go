package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/session"
)

const reviewPrompt = "Grade [1-4 or again/hard/good/easy], s=skip, b=bookmark, q=quit: "

func newReviewCmd() *cobra.Command {
	var f session.Filter

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Start a review session over due and new cards",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			return runReview(cmd.Context(), a, f, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}
	cmd.Flags().StringSliceVarP(&f.Topics, "topic", "t", nil, "only review cards of these topics")
	cmd.Flags().BoolVarP(&f.BookmarkedOnly, "bookmarked", "b", false, "only review bookmarked cards")
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "only review cards containing this text")
	cmd.Flags().IntVarP(&f.Limit, "limit", "n", session.DefaultLimit, "maximum cards in the session")
	return cmd
}

func runReview(ctx context.Context, a *app.App, f session.Filter, in io.Reader, out io.Writer) error {
	now := clock()
	queue := session.BuildQueue(a.Cards, a.Reviews.Snapshot(), now, f)
	if len(queue) == 0 {
		fmt.Fprintln(out, "Nothing to review right now.")
		return nil
	}

	sess := session.New(queue, now)
	sc := bufio.NewScanner(in)
	studied := false
	fmt.Fprintf(out, "Review session: %d cards\n", len(queue))

	for !sess.Done() {
		card, _ := sess.Current()
		fmt.Fprintf(out, "\n[%d left] %s\n%s\n", sess.Remaining(), card.Topic, card.Front)
		fmt.Fprint(out, "Press Enter to reveal...")
		if !sc.Scan() {
			return reviewSummary(out, sess)
		}
		fmt.Fprintf(out, "\n%s\n\n", card.Back)

		preview, err := a.Reviews.PreviewReview(card.ID, clock())
		if err != nil {
			return err
		}
		for _, g := range domain.Grades() {
			fmt.Fprintf(out, "  %d %-5s  %s\n", int(g), g, formatWait(preview[g].Card.Due.Sub(clock())))
		}

		for answered := false; !answered; {
			fmt.Fprint(out, reviewPrompt)
			if !sc.Scan() {
				return reviewSummary(out, sess)
			}

			switch answer := strings.ToLower(strings.TrimSpace(sc.Text())); answer {
			case "q":
				return reviewSummary(out, sess)
			case "s":
				sess.Next()
				answered = true
			case "b":
				on, err := a.Reviews.ToggleBookmark(ctx, card.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Bookmark %s.\n", onOff(on))
			default:
				grade, err := domain.ParseGrade(answer)
				if err != nil {
					fmt.Fprintf(out, "Unknown answer %q.\n", answer)
					continue
				}
				res, err := sess.Answer(ctx, a.Reviews, grade, clock())
				if err != nil {
					return err
				}
				if !studied {
					if _, err := a.Progress.RecordStudyDay(ctx, clock()); err != nil {
						return err
					}
					studied = true
				}
				fmt.Fprintf(out, "%s: next review %s (%s)\n",
					res.Card.State, res.Card.Due.In(a.Location).Format("2006-01-02 15:04"), formatWait(res.Card.Due.Sub(clock())))
				answered = true
			}
		}
	}
	return reviewSummary(out, sess)
}

func reviewSummary(out io.Writer, sess *session.Session) error {
	g := sess.Grades()
	fmt.Fprintf(out, "\nSession done: again %d, hard %d, good %d, easy %d.\n", g.Again, g.Hard, g.Good, g.Easy)
	return nil
}

// formatWait renders a scheduling delay the way review buttons show it.
func formatWait(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Round(time.Minute)/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Round(time.Hour)/time.Hour))
	default:
		return fmt.Sprintf("%dd", int(d.Round(24*time.Hour)/(24*time.Hour)))
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
