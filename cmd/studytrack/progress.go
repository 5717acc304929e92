package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/domain"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track the study plan checklist and topic notes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "check <item-id>",
			Short: "Toggle a checklist item such as month1-week2-closures",
			Args:  cobra.ExactArgs(1),
			RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
				done, err := a.Progress.ToggleChecklistItem(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if done {
					if _, err := a.Progress.RecordStudyDay(cmd.Context(), clock()); err != nil {
						return err
					}
				}
				state := "open"
				if done {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], state)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "note <topic-id> [text...]",
			Short: "Show a topic note, or replace it with text",
			Args:  cobra.MinimumNArgs(1),
			RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
				if len(args) == 1 {
					fmt.Fprintln(cmd.OutOrStdout(), a.Progress.Notes()[args[0]])
					return nil
				}
				return a.Progress.UpdateNote(cmd.Context(), args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "week <month> <week>",
			Short: "Show the completion of a plan week",
			Args:  cobra.ExactArgs(2),
			RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
				month, err := strconv.Atoi(args[0])
				if err != nil || month < 1 {
					return domain.NewValidationError("month", "must be a positive number")
				}
				week, err := strconv.Atoi(args[1])
				if err != nil || week < 1 {
					return domain.NewValidationError("week", "must be a positive number")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Month %d week %d: %d%% done\n", month, week, a.Progress.WeekProgress(month, week))
				return nil
			}),
		},
	)
	return cmd
}
