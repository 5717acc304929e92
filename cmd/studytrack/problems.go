package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/problemlog"
)

func newProblemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "problems",
		Aliases: []string{"p"},
		Short:   "Log solved practice problems",
	}
	cmd.AddCommand(
		newProblemsAddCmd(),
		newProblemsListCmd(),
		newProblemsRemoveCmd(),
		newProblemsRetryCmd(),
		newProblemsSuggestCmd(),
	)
	return cmd
}

func newProblemsAddCmd() *cobra.Command {
	var (
		in         problemlog.AddProblemInput
		difficulty string
		solved     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Log a solved problem",
		Args:  cobra.MinimumNArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			in.Title = strings.Join(args, " ")
			in.Difficulty = domain.ProblemDifficulty(strings.ToLower(difficulty))
			if solved != "" {
				t, err := time.ParseInLocation("2006-01-02", solved, a.Location)
				if err != nil {
					return domain.NewValidationError("solved", "must be YYYY-MM-DD")
				}
				in.SolvedAt = t
			}

			p, err := a.Problems.AddProblem(cmd.Context(), in, clock())
			if err != nil {
				return err
			}
			if _, err := a.Progress.RecordStudyDay(cmd.Context(), clock()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s).\n", p.Title, p.ID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy, medium or hard")
	cmd.Flags().StringVarP(&in.Pattern, "pattern", "p", "", "solution pattern, e.g. two-pointers")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "tags (repeatable)")
	cmd.Flags().IntVar(&in.RetryCount, "retries", 0, "attempts before solving")
	cmd.Flags().StringVar(&solved, "solved", "", "solve date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

func newProblemsListCmd() *cobra.Command {
	var pattern, difficulty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged problems",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTitle\tDiff\tPattern\tSolved\tRetries\tTags")
			for _, p := range a.Problems.Problems() {
				if pattern != "" && !strings.EqualFold(p.Pattern, pattern) {
					continue
				}
				if difficulty != "" && !strings.EqualFold(string(p.Difficulty), difficulty) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.Title, p.Difficulty, p.Pattern,
					p.SolvedAt.In(a.Location).Format("2006-01-02"), p.RetryCount, strings.Join(p.Tags, ", "))
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "only this pattern")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "only this difficulty")
	return cmd
}

func newProblemsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove logged problems",
		Args:    cobra.MinimumNArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 1 {
				if err := a.Problems.RemoveProblem(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed 1 problem.")
				return nil
			}

			n, err := a.Problems.RemoveBulk(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d problems.\n", n)
			return nil
		}),
	}
}

func newProblemsRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Count another attempt on a logged problem",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			var current int
			found := false
			for _, p := range a.Problems.Problems() {
				if p.ID == args[0] {
					current, found = p.RetryCount, true
					break
				}
			}
			if !found {
				return fmt.Errorf("problem %q: %w", args[0], domain.ErrNotFound)
			}

			next := current + 1
			p, err := a.Problems.UpdateProblem(cmd.Context(), args[0], problemlog.UpdateProblemInput{RetryCount: &next})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d retries.\n", p.Title, p.RetryCount)
			return nil
		}),
	}
}

func newProblemsSuggestCmd() *cobra.Command {
	var (
		in         problemlog.AddSuggestionInput
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "suggest <topic-id> [<id> <title>]",
		Short: "List problem suggestions of a topic, or attach a new one",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 || len(args) >= 3 {
				return nil
			}
			return fmt.Errorf("want a topic id, optionally followed by a problem id and title")
		},
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			out := cmd.OutOrStdout()
			topic := args[0]
			if len(args) == 1 {
				for _, s := range a.Problems.SuggestionsByTopic(topic) {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Difficulty, s.Pattern)
				}
				return nil
			}

			in.TopicID = topic
			in.ID = args[1]
			in.Title = strings.Join(args[2:], " ")
			in.Difficulty = domain.ProblemDifficulty(strings.ToLower(difficulty))
			added, err := a.Problems.AddSuggestion(cmd.Context(), in, clock())
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(out, "%s is already suggested for %s.\n", in.ID, topic)
				return nil
			}
			fmt.Fprintf(out, "Suggested %s for %s.\n", in.Title, topic)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "easy, medium or hard")
	cmd.Flags().StringVarP(&in.Pattern, "pattern", "p", "", "solution pattern")
	cmd.Flags().StringVar(&in.Relevance, "relevance", "", "why the problem fits the topic")
	return cmd
}
