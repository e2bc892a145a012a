package main

import (
	"github.com/spf13/cobra"

	"github.com/phobologic/swiglls/internal/dump"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <input.xml>",
		Short: "Print the symbol model of a binding as YAML",
		Long: `Print the namespaces, classes, functions and enums swiglls builds from a
SWIG XML file, before any type is resolved. Diagnostics go to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags, nil)
			if err != nil {
				return err
			}
			b, err := loadBinding(args[0], e.cfg)
			if err != nil {
				return err
			}
			b.report.Log(e.log)
			return dump.YAML(cmd.OutOrStdout(), b.root)
		},
	}
}
