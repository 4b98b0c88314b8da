package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codefitter/internal/console"
	"codefitter/internal/diff"
)

type applyOptions struct {
	file     string
	diffPath string
	yes      bool
	noColor  bool
}

// newApplyCommand applies a diff file to a local file after confirmation.
func newApplyCommand(std streams) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply --file <path> --diff <patch|->",
		Short: "Apply a unified diff to one file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(std, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Target file")
	cmd.Flags().StringVarP(&opts.diffPath, "diff", "d", "", "Diff file, or - for stdin")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Apply without asking")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("diff")
	return cmd
}

func runApply(std streams, opts *applyOptions) error {
	diffText, err := readDiff(std.in, opts.diffPath)
	if err != nil {
		return err
	}
	presenter := console.NewPresenter(std.out, console.ShouldStyle(std.out, opts.noColor))
	presenter.ToolCall("apply", opts.file)
	presenter.Diff(diffText)

	if !opts.yes {
		if opts.diffPath == "-" {
			return usageError{err: errors.New("--yes is required when the diff is read from stdin")}
		}
		ok, err := console.NewLinePrompter(std.in, std.out).Confirm("Apply this change to " + opts.file + "?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(std.out, "Change rejected, file left untouched.")
			return nil
		}
	}
	if err := diff.ApplyFile(opts.file, diffText); err != nil {
		return err
	}
	fmt.Fprintf(std.out, "Applied diff to %s\n", opts.file)
	return nil
}

func readDiff(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "read diff from stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read diff")
	}
	return string(data), nil
}
