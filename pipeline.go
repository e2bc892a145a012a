package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/swiglls/internal/build"
	"github.com/phobologic/swiglls/internal/config"
	"github.com/phobologic/swiglls/internal/diag"
	"github.com/phobologic/swiglls/internal/emit"
	"github.com/phobologic/swiglls/internal/model"
	"github.com/phobologic/swiglls/internal/parse"
	"github.com/phobologic/swiglls/internal/resolve"
)

// binding is one SWIG module read from disk and built into a symbol model.
type binding struct {
	path   string
	module string
	root   *model.Scope
	report *diag.Report
}

func loadBinding(path string, cfg *config.Config) (*binding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	doc, err := parse.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	rep := diag.New()
	mod, err := parse.Ingest(doc, rep, cfg.ParseOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return &binding{
		path:   path,
		module: mod.Name,
		root:   build.Build(mod.Root),
		report: rep,
	}, nil
}

// annotations resolves every type of the binding and renders its files.
func (b *binding) annotations(cfg *config.Config) []emit.File {
	res := resolve.New(resolve.NewTables(b.root), b.report, cfg.ResolveOptions())
	return emit.New(res, b.report).Files(b.root, b.module)
}

// expandInputs replaces every directory argument by the files find returns
// for it. Plain file arguments are kept as given.
func expandInputs(args []string, find func(root string) ([]string, error)) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", arg)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		found, err := find(arg)
		if err != nil {
			return nil, err
		}
		for _, rel := range found {
			inputs = append(inputs, filepath.Join(arg, rel))
		}
	}
	return inputs, nil
}
