package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks failures caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// streams are the process streams handed to every command.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// globalOptions are flags shared by all commands.
type globalOptions struct {
	configPath string
	logLevel   string
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), args, stdin, stdout, stderr)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	std := streams{in: stdin, out: stdout, err: stderr}
	root := newRootCommand(std)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}
	var usage usageError
	if errors.As(err, &usage) || isCobraUsageError(err) {
		fmt.Fprintf(stderr, "%v\n\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

// newRootCommand assembles the command tree.
func newRootCommand(std streams) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "codefitter",
		Short:         "Let a language model read, patch, and write local files with your approval",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageError{err: errors.New("a command is required")}
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(std.err, opts.logLevel)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .codefitter/config.yml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(
		newInitCommand(std),
		newValidateCommand(std, opts),
		newRunCommand(std, opts),
		newApplyCommand(std),
	)
	return root
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{err: errors.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
	}
	return nil
}

// isCobraUsageError recognizes argument errors cobra reports as plain errors.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "required flag")
}
