package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newValidateCommand checks the config and the API credential.
func newValidateCommand(std streams, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and API credential",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(opts.configPath)
			if err != nil {
				return errors.Wrap(err, "validation failed")
			}
			fmt.Fprintf(std.out, "Config OK (%s, model %s)\n", loaded.path, loaded.cfg.ModelName)
			return nil
		},
	}
}
