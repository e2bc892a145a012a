package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/swiglls/internal/check"
	"github.com/phobologic/swiglls/internal/discover"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.lua|dir>...",
		Short: "Syntax check annotation files",
		Long: `Parse annotation files with a Lua grammar and print every syntax error as
file:line:column. Directories are searched for *.lua files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags, nil)
			if err != nil {
				return err
			}

			paths, err := expandInputs(args, func(root string) ([]string, error) {
				return discover.Matching(root, discover.LuaExtension)
			})
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no Lua files found")
			}

			results, err := check.Files(cmd.Context(), paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.OK() {
					continue
				}
				failed++
				for _, p := range res.Errors {
					what := "syntax error"
					if p.Missing {
						what = "missing token"
					}
					_, _ = fmt.Fprintf(out, "%s:%d:%d: %s\n", res.Path, p.Line, p.Column, what)
				}
			}

			e.log.Infow("checked annotation files", "files", len(results), "failed", failed)
			if failed > 0 {
				return errors.Newf("%d of %d files have syntax errors", failed, len(results))
			}
			return nil
		},
	}
}
