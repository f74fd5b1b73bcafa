package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
	"github.com/akam1o/lnxconfig/pkg/logger"
)

var (
	// Version information (set by ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Exit codes
const (
	ExitSuccess        = 0
	ExitOperationError = 1
	ExitUsageError     = 2
)

// usageError is returned for bad arguments or flags
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...interface{}) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs turns a cobra argument validation error into a usage error
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// errReported signals a failure whose details were already printed
var errReported = errors.New("failure already reported")

// app holds state shared by all subcommands
type app struct {
	stdout io.Writer
	stderr io.Writer

	settingsPath string
	configPath   string
	flags        Settings

	settings *Settings
	log      *logger.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return exitCode(root.Execute(), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errReported) {
		return ExitOperationError
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "Run 'lnxctl --help' for usage.\n")
		return ExitUsageError
	}
	return ExitOperationError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "lnxctl",
		Short: "Inspect and check lnx topology files",
		Long: `lnxctl parses lnx files, the per-node topology description of the
virtual IP network, and prints what the simulator would see.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(a.stderr)
			_ = cmd.Usage()
			return usageErrorf("a command is required")
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "settings", "", "Path to an lnxctl settings file (YAML)")
	pf.StringVarP(&a.configPath, "config", "c", "", "Path to the lnx file")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "Log format: console or json")
	pf.StringVar(&a.flags.Color, "color", "", "Colored output: auto, always or never")
	pf.BoolVar(&a.flags.Strict, "strict", false, "Validate references between records after parsing")

	root.AddCommand(
		newShowCmd(a),
		newDumpCmd(a),
		newCheckCmd(a),
		newDiffCmd(a),
		newVersionCmd(a),
	)

	return root
}

// init loads settings and builds the logger
func (a *app) init() error {
	settings, err := LoadSettings(a.settingsPath, &a.flags)
	if err != nil {
		return err
	}
	a.settings = settings

	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		return usageError{err: err}
	}
	log, err := logger.New("lnxctl", &logger.Config{Level: level, Format: settings.LogFormat})
	if err != nil {
		return usageError{err: err}
	}
	a.log = log

	switch settings.Color {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}

	a.log.Debugw("settings loaded",
		"settings_file", a.settingsPath,
		"log_level", settings.LogLevel,
		"strict", settings.Strict,
	)
	return nil
}

// requireConfig returns the lnx file given with --config
func (a *app) requireConfig() (string, error) {
	if a.configPath == "" {
		return "", usageErrorf("an lnx file is required (--config)")
	}
	return a.configPath, nil
}

// load parses an lnx file, printing a detailed report on failure
func (a *app) load(path string) (*lnxconfig.IPConfig, error) {
	opts := []lnxconfig.Option{
		lnxconfig.WithLogger(a.log.WithField("source", path)),
	}
	if a.settings.Strict {
		opts = append(opts, lnxconfig.WithStrict())
	}

	a.log.Debugw("loading lnx file", "path", path)

	config, err := lnxconfig.ParseConfig(path, opts...)
	if err != nil {
		reportError(a.stderr, err)
		return nil, errReported
	}
	return config, nil
}
