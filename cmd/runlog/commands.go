package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/orgoj/runlog/internal/config"
	"github.com/orgoj/runlog/internal/logger"
)

const (
	writeCmdShort = "write records to a named log file"
	writeCmdLong  = `Configure the named logger and write a record.
	The positional arguments are joined into a single message. Without
	arguments every line read from stdin becomes its own record.

	Flags override the values resolved from the configuration file.`
	writeCmdExample = `# Append one line to logs/jobs_<today>.log and mirror it on stderr
	runlog write --name jobs "backup finished"

	# Capture a job's output into a fresh per-run file without console output
	./nightly.sh | runlog write --name nightly --mode run --console=false`

	pathCmdShort = "print the log file path a logger would use"

	checkConfigCmdShort = "validate a configuration file"
	checkConfigCmdLong  = `Load and validate a configuration file and exit.
	With --name the settings resolved for that logger are printed as well.`

	nameFlagName     = "name"
	dirFlagName      = "dir"
	levelFlagName    = "level"
	severityFlagName = "severity"
	consoleFlagName  = "console"
	modeFlagName     = "mode"
)

var errNoName = errors.New("a logger name is required (--name)")

// loggerFlags holds the per-logger flags shared by write and path.
type loggerFlags struct {
	name    string
	dir     string
	level   string
	console bool
	mode    string
}

func (f *loggerFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.name, nameFlagName, "n", "", "logger name, used as the log file prefix")
	flags.StringVarP(&f.dir, dirFlagName, "d", "", "log directory (default \""+logger.DefaultDir+"\")")
	flags.StringVarP(&f.level, levelFlagName, "l", "", "minimum level written (default \""+logger.DefaultLevel.String()+"\")")
	flags.BoolVar(&f.console, consoleFlagName, true, "mirror records on stderr")
	flags.StringVarP(&f.mode, modeFlagName, "m", "", "file policy: daily or run (default \""+string(logger.DefaultMode)+"\")")
}

// toOptions resolves the options for the named logger: config file settings
// first, then any flag explicitly set on the command line.
func (f *loggerFlags) toOptions(cmd *cobra.Command, cfg *config.Config) (logger.Options, error) {
	if f.name == "" {
		return logger.Options{}, errNoName
	}

	settings := cfg.SettingsFor(f.name)
	flags := cmd.Flags()
	if flags.Changed(dirFlagName) {
		settings.Dir = f.dir
	}
	if flags.Changed(levelFlagName) {
		settings.Level = f.level
	}
	if flags.Changed(consoleFlagName) {
		console := f.console
		settings.Console = &console
	}
	if flags.Changed(modeFlagName) {
		settings.Mode = f.mode
	}

	return logger.OptionsFromSettings(f.name, settings)
}

// handleError prints err and, for missing input, the usage.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	if errors.Is(err, errNoName) {
		_ = cmd.Usage()
	}
	return err
}

// writeCmd returns the Cobra command that writes records.
func writeCmd(root *rootFlags) *cobra.Command {
	flags := &loggerFlags{}
	var severity string

	cmd := &cobra.Command{
		Use:     "write [message...]",
		Short:   heredoc.Doc(writeCmdShort),
		Long:    heredoc.Doc(writeCmdLong),
		Example: heredoc.Doc(writeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := root.loadConfig(cmd)
			if err != nil {
				return handleError(cmd, err)
			}
			opts, err := flags.toOptions(cmd, cfg)
			if err != nil {
				return handleError(cmd, err)
			}
			level, err := logger.ParseLevel(severity)
			if err != nil {
				return handleError(cmd, err)
			}

			registry := logger.NewRegistry(
				logger.WithConsoleWriter(cmd.ErrOrStderr()),
				logger.WithAppLogger(app),
			)
			if err := writeRecords(cmd, registry, opts, level, args); err != nil {
				_ = registry.CloseAll()
				return handleError(cmd, err)
			}
			if err := registry.CloseAll(); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	cmd.Flags().StringVarP(&severity, severityFlagName, "s", logger.INFO.String(), "level of the records written")
	return cmd
}

func writeRecords(cmd *cobra.Command, registry *logger.Registry, opts logger.Options, level logger.Level, args []string) error {
	lg, err := registry.Setup(opts)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		lg.Log(level, "%s", strings.Join(args, " "))
		return nil
	}

	w := lg.Writer(level)
	defer w.Close()
	if _, err := io.Copy(w, cmd.InOrStdin()); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return nil
}

// pathCmd returns the Cobra command that prints the resolved log file path.
func pathCmd(root *rootFlags) *cobra.Command {
	flags := &loggerFlags{}

	cmd := &cobra.Command{
		Use:   "path",
		Short: heredoc.Doc(pathCmdShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.loadConfig(cmd)
			if err != nil {
				return handleError(cmd, err)
			}
			opts, err := flags.toOptions(cmd, cfg)
			if err != nil {
				return handleError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), logger.LogPath(opts.Dir, opts.Name, opts.Mode, time.Now()))
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// checkConfigCmd returns the Cobra command that validates a configuration file.
func checkConfigCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "check-config FILE",
		Short: heredoc.Doc(checkConfigCmdShort),
		Long:  heredoc.Doc(checkConfigCmdLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args[0])
			if err != nil {
				return handleError(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration '%s' is valid.\n", args[0])
			if name == "" {
				return nil
			}

			opts, err := logger.OptionsFromSettings(name, cfg.SettingsFor(name))
			if err != nil {
				return handleError(cmd, err)
			}
			fmt.Fprintf(out, "%s: dir=%s level=%s console=%t mode=%s\n", opts.Name, opts.Dir, opts.Level, opts.Console, opts.Mode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, nameFlagName, "n", "", "print the settings resolved for this logger name")
	return cmd
}
