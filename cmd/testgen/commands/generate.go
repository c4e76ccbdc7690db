package commands

import (
	"github.com/spf13/cobra"

	"github.com/toyz/testgen/internal/models"
)

func (a *app) generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate a test scaffold for one module",
		Long: `Generate a test scaffold for one module.

The test is written next to the module as {name}.test.tsx. Nothing is written
when the test already exists or the module's name marks it as a test, spec or
config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}

			result := gen.GeneratePaths(args)
			item := result.Items[0]

			switch item.Status {
			case models.StatusGenerated:
				a.diag.Success("Generated test: %s", item.TestPath)
			case models.StatusExisting:
				a.diag.Info("Test file already exists: %s", item.TestPath)
			case models.StatusSkipped:
				a.diag.Info("No test generated for %s", item.Path)
			case models.StatusFailed:
				return item.Err
			}
			return nil
		},
	}
}

func (a *app) generateAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-all",
		Short: "Generate test scaffolds for every module missing a test",
		Long: `Generate test scaffolds for every module under the source directory that has
no test yet. A module that fails is reported and the rest are still processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}

			a.diag.ToolHeader("Generating missing tests")
			a.diag.SourcePath(a.config.SourceDir)

			result, err := gen.GenerateAllMissingTests()
			if err != nil {
				return err
			}

			a.reporter.ReportBatch("Modules", result)
			if result.HasFailures() {
				a.diag.Warn("%d module(s) could not be generated", result.Count(models.StatusFailed))
				return nil
			}
			a.diag.GenerationComplete()
			return nil
		},
	}
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List modules that have no test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.generator()
			if err != nil {
				return err
			}

			paths, err := gen.FindModulesNeedingTests()
			if err != nil {
				return err
			}

			a.reporter.ReportPaths("Modules needing tests", paths, "All modules have tests")
			return nil
		},
	}
}
