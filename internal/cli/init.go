package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codefitter/internal/config"
)

// newInitCommand scaffolds a config in the working directory.
func newInitCommand(std streams) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold .codefitter/config.yml",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "resolve working directory")
			}
			path := config.ConfigPath(wd)
			if err := config.Scaffold(path); err != nil {
				return err
			}
			fmt.Fprintf(std.out, "Wrote %s\n", path)
			fmt.Fprintf(std.out, "Set %s (or add it to .env) before running.\n", config.DefaultAPIKeyEnv)
			return nil
		},
	}
}
