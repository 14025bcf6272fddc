package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/orgoj/runlog/internal/config"
	"github.com/orgoj/runlog/internal/logger"
	"github.com/orgoj/runlog/internal/version"
)

const (
	appName  = "runlog"
	appShort = "runlog appends timestamped records to per-day or per-run log files"
	appLong  = `runlog configures a named logger and writes records to
	{dir}/{name}_{YYYY-MM-DD}.log (daily mode) or
	{dir}/{name}_{YYYY-MM-DD_HH-MM-SS}.log (run mode),
	optionally mirroring every line to stderr.

	Per-logger defaults can be provided in a YAML file with --config.`

	configFlagName      = "config"
	configShortFlagName = "c"
	appLogFlagName      = "app-log-level"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	configPath  string
	appLogLevel string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.configPath, configFlagName, configShortFlagName, "", "path to a YAML configuration file")
	flags.StringVar(&f.appLogLevel, appLogFlagName, "", "level of runlog's own diagnostics (overrides app_log.level)")
}

// loadConfig reads the configuration file when one was given and applies the
// application log level.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, *logger.AppLogger, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	appLevel := cfg.AppLog.Level
	if f.appLogLevel != "" {
		appLevel = f.appLogLevel
	}
	app := logger.NewAppLogger(cmd.ErrOrStderr(), logger.WARNING)
	if err := app.SetLogLevelFromString(appLevel); err != nil {
		return nil, nil, err
	}
	return cfg, app, nil
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),
		Long:  heredoc.Doc(appLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flags.addFlags(cmd)
	cmd.AddCommand(
		writeCmd(flags),
		pathCmd(flags),
		checkConfigCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: heredoc.Doc("Display the " + appName + " version"),

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.VersionInfo())
		},
	}
}
