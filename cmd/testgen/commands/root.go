package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/testgen/internal/cli"
	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/logger"
	"github.com/toyz/testgen/internal/utils"
)

// app carries the state shared by every command of one invocation
type app struct {
	v        *viper.Viper
	config   *cli.Config
	diag     *utils.DiagnosticSystem
	reporter *cli.DiagnosticReporter
}

func newApp() *app {
	return &app{v: cli.NewViper()}
}

// Execute runs the command line and reports any failure
func Execute() error {
	a := newApp()
	root := a.rootCommand()

	err := root.Execute()
	if err != nil {
		a.reportError(root, err)
	}
	_ = logger.Sync()
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "testgen",
		Short: "Generate test scaffolds for JavaScript and TypeScript modules",
		Long: `testgen - heuristic test-scaffold generator.

testgen classifies each module as a UI component or a utility module using
lightweight text patterns, then writes a sibling {name}.test.tsx scaffold.
Existing tests are never overwritten.

Configuration is read from testgen.{toml,yaml,json} in the working directory,
TESTGEN_* environment variables and the flags below.

Examples:
  testgen generate src/components/Button.tsx   # Scaffold one module
  testgen generate-all                         # Scaffold every module missing a test
  testgen check                                # List modules without tests
  testgen watch -p src/components              # Scaffold modules as they are written
  testgen git-changed -c main                  # Scaffold modules changed since main`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default testgen.{toml,yaml,json} in the working directory)")
	flags.String("src", "src", "source directory scanned for modules")
	flags.String("test-dir", "src", "directory generated tests are staged from")
	flags.BoolP("verbose", "v", false, "enable verbose output and detailed error reporting")
	flags.BoolP("quiet", "q", false, "only show errors and final results")
	flags.Bool("log-json", false, "write the structured log to stderr as JSON")
	flags.Bool("no-color", false, "disable colored output")

	_ = a.v.BindPFlag("source_dir", flags.Lookup("src"))
	_ = a.v.BindPFlag("test_dir", flags.Lookup("test-dir"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = a.v.BindPFlag("log.json", flags.Lookup("log-json"))
	_ = a.v.BindPFlag("no_color", flags.Lookup("no-color"))

	root.AddCommand(
		a.generateCommand(),
		a.generateAllCommand(),
		a.checkCommand(),
		a.watchCommand(),
		a.gitChangedCommand(),
		a.gitNewCommand(),
		a.gitStageCommand(),
		a.gitStatusCommand(),
	)

	return root
}

// setup loads configuration and initialises logging and diagnostics before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	config, err := cli.LoadConfig(a.v, configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	a.config = config

	logOptions := config.LoggerOptions()
	logOptions.Output = cmd.ErrOrStderr()
	if err := logger.Initialize(logOptions); err != nil {
		return errors.WrapWithOperation("initialize", "logger", err)
	}

	if config.NoColor {
		color.NoColor = true
	}
	a.diag = config.Diagnostics()
	a.diag.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	a.reporter = cli.NewDiagnosticReporter(config.Verbose, a.diag)
	a.reporter.SetErrorOutput(cmd.ErrOrStderr())

	if config.ConfigFile != "" {
		a.reporter.Debug("Using configuration from %s", config.ConfigFile)
	}
	return nil
}

func (a *app) generator() (*generator.Generator, error) {
	return generator.NewGenerator(a.config.GeneratorOptions())
}

// reportError prints err with the rich reporter, or a minimal one when setup never ran
func (a *app) reportError(cmd *cobra.Command, err error) {
	reporter := a.reporter
	if reporter == nil {
		verbose, _ := cmd.PersistentFlags().GetBool("verbose")
		diag := utils.NewDiagnosticSystem(utils.DiagnosticError)
		diag.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		reporter = cli.NewDiagnosticReporter(verbose, diag)
		reporter.SetErrorOutput(cmd.ErrOrStderr())
	}
	reporter.ReportError(err)
}
