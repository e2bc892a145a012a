package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/phobologic/swiglls/internal/check"
	"github.com/phobologic/swiglls/internal/discover"
	"github.com/phobologic/swiglls/internal/emit"
)

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <input.xml|dir>...",
		Short: "Write annotation files for SWIG XML bindings",
		Long: `Write one annotation file per top-level namespace of each binding, plus
<module>.lua for declarations outside any namespace. Directories are searched
for *.xml files, honouring .gitignore.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags, map[string]string{"output": "output", "check": "check"})
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), e, args)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default \"meta\")")
	cmd.Flags().Bool("check", false, "syntax check generated files before writing them")
	return cmd
}

func runGenerate(ctx context.Context, e *env, args []string) error {
	inputs, err := expandInputs(args, discover.Files)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.WithHint(errors.New("no SWIG XML files found"),
			"generate them with `swig -lua -c++ -xml -o <module>.xml <module>.i`")
	}

	writtenBy := make(map[string]string)
	for _, in := range inputs {
		b, err := loadBinding(in, e.cfg)
		if err != nil {
			return err
		}
		files := b.annotations(e.cfg)

		if e.cfg.Check {
			if err := checkGenerated(ctx, e, files); err != nil {
				return errors.Wrapf(err, "%s", in)
			}
		}

		for _, f := range files {
			if prev, ok := writtenBy[f.Name]; ok {
				e.log.Warnw("annotation file written by more than one input", "file", f.Name, "previous", prev, "input", in)
			}
			writtenBy[f.Name] = in
		}
		if err := emit.Write(e.cfg.Output, files); err != nil {
			return err
		}

		b.report.Log(e.log)
		e.log.Infow("wrote annotations",
			"input", in,
			"module", b.module,
			"files", len(files),
			"skipped", skippedOverloads(files),
			"unresolved", len(b.report.Unresolved()),
		)
	}
	return nil
}

func skippedOverloads(files []emit.File) int {
	n := 0
	for _, f := range files {
		for _, o := range f.Outcomes {
			if o.Skipped {
				n++
			}
		}
	}
	return n
}

// checkGenerated parses each file before it is written and logs every syntax
// error found.
func checkGenerated(ctx context.Context, e *env, files []emit.File) error {
	failed := 0
	for i := range files {
		res, err := check.Source(ctx, []byte(files[i].Content()))
		if err != nil {
			return errors.Wrapf(err, "checking %s", files[i].Name)
		}
		if res.OK() {
			continue
		}
		failed++
		for _, p := range res.Errors {
			e.log.Errorw("generated file has a syntax error", "file", files[i].Name, "line", p.Line, "column", p.Column)
		}
	}
	if failed > 0 {
		return errors.Newf("%d generated files failed the syntax check", failed)
	}
	return nil
}
