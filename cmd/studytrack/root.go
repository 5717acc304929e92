package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studytrack/internal/app"
	"github.com/heartmarshall/studytrack/internal/config"
	"github.com/heartmarshall/studytrack/pkg/ctxutil"
)

// clock is replaced in tests.
var clock = time.Now

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Spaced-repetition study tracker",
		Long:          "studytrack schedules flashcard reviews with FSRS and keeps a practice problem log and study plan progress.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configPath != "" {
				_ = os.Setenv("CONFIG_PATH", configPath)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (overrides CONFIG_PATH)")

	root.AddCommand(
		newReviewCmd(),
		newDueCmd(),
		newStatsCmd(),
		newBookmarkCmd(),
		newProblemsCmd(),
		newProgressCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetTodayCmd(),
		newVersionCmd(),
	)
	return root
}

// runWithApp adapts fn into a cobra RunE that loads configuration, opens the
// application and closes it afterwards.
func runWithApp(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(ctxutil.WithCommand(cmd.Context(), cmd.CommandPath()))

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := app.NewLogger(cfg.Log)

		a, err := app.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				log.Warn("close storage", "error", cerr)
			}
		}()

		return fn(cmd, a, args)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
