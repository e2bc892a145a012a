package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/swiglls/internal/config"
)

// newInitCmd implements `swiglls init`, which writes a commented
// configuration file with every default spelled out.
func newInitCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented " + config.FileName,
		Long: `Write a configuration file listing every setting with its default value.
path defaults to ./` + config.FileName + `. An existing file is left alone unless
--force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), config.Template)
				return nil
			}

			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path), "use --force to overwrite it")
			}

			if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the file instead of writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
