package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toyz/testgen/internal/watcher"
)

func (a *app) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Generate tests for modules as they are created or changed",
		Long: `Watch a directory and generate test scaffolds for modules as they are created
or changed. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config.WatchPath()
			if cmd.Flags().Changed("path") {
				path, _ = cmd.Flags().GetString("path")
			}

			gen, err := a.generator()
			if err != nil {
				return err
			}

			w, err := watcher.New(path, gen, watcher.Options{
				Extensions:  a.config.Extensions,
				ExcludeDirs: a.config.ExcludeDirs,
				Debounce:    a.config.Watch.Debounce,
				Diagnostics: a.diag,
			})
			if err != nil {
				return err
			}

			a.diag.SourcePath(w.Root())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringP("path", "p", "", "directory to watch (default source directory)")
	return cmd
}
