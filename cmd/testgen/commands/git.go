package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/testgen/internal/vcs"
)

func (a *app) openRepository() (*vcs.Repository, error) {
	repo, err := vcs.Open(a.config.Git.Repository)
	if err != nil {
		return nil, err
	}
	repo.SetExtensions(a.config.Extensions)
	a.diag.Section(fmt.Sprintf("Repository: %s", repo.Root()))
	return repo, nil
}

// compareRef returns the --compare flag when given, the configured ref otherwise
func (a *app) compareRef(cmd *cobra.Command) string {
	if cmd.Flags().Changed("compare") {
		ref, _ := cmd.Flags().GetString("compare")
		return ref
	}
	return a.config.Git.Compare
}

// generateFor lists files and generates tests for them
func (a *app) generateFor(title string, files []string, emptyMessage string) error {
	a.reporter.ReportPaths(title, files, emptyMessage)
	if len(files) == 0 {
		return nil
	}

	gen, err := a.generator()
	if err != nil {
		return err
	}

	a.reporter.ReportBatch("Generating tests", gen.GeneratePaths(files))
	return nil
}

func (a *app) gitChangedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-changed",
		Short: "Generate tests for modules changed since a revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}

			ref := a.compareRef(cmd)
			files, err := repo.ChangedFiles(ref)
			if err != nil {
				return err
			}

			return a.generateFor("Changed files", files, fmt.Sprintf("No modules changed since %s", ref))
		},
	}

	cmd.Flags().StringP("compare", "c", vcs.DefaultCompareRef, "revision to compare against")
	return cmd
}

func (a *app) gitNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-new",
		Short: "Generate tests for modules added since a revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}

			ref := a.compareRef(cmd)
			files, err := repo.NewFiles(ref)
			if err != nil {
				return err
			}

			return a.generateFor("New files", files, fmt.Sprintf("No modules added since %s", ref))
		},
	}

	cmd.Flags().StringP("compare", "c", vcs.DefaultCompareRef, "revision to compare against")
	return cmd
}

func (a *app) gitStageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "git-stage",
		Short: "Stage generated test files under the test directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}

			staged, err := repo.StageTestFiles(a.config.TestDir)
			if err != nil {
				return err
			}

			a.reporter.ReportPaths("Staged test files", staged, "No test files to stage")
			return nil
		},
	}
}

func (a *app) gitStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "git-status",
		Short: "Report whether the working tree is clean",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}

			clean, err := repo.IsClean()
			if err != nil {
				return err
			}

			if clean {
				a.diag.Success("Working tree is clean")
				return nil
			}
			a.reporter.ReportWarning("Working tree has uncommitted changes",
				"commit or stash them so generated tests land in their own commit")
			return nil
		},
	}
}
