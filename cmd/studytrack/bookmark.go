package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
)

func newBookmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark [card-id]",
		Short: "Toggle a card bookmark, or list bookmarks without an argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, id := range a.Reviews.Bookmarks() {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			on, err := a.Reviews.ToggleBookmark(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Bookmark %s for %s.\n", onOff(on), args[0])
			return nil
		}),
	}
}

func newResetTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-today",
		Short: "Reset today's review counter",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			if err := a.Reviews.ResetDailyStats(cmd.Context(), clock()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Daily review counter reset.")
			return nil
		}),
	}
}
