// Package check validates generated annotation files with the tree-sitter Lua
// grammar.
package check

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/lua"
)

// Position is a 1-based location of a syntax error.
type Position struct {
	Line    int
	Column  int
	Missing bool // the parser inserted a token that is absent from the source
}

// Result lists the syntax errors found in one file.
type Result struct {
	Path   string
	Errors []Position
}

// OK reports whether the source parsed cleanly.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// NewParser creates a tree-sitter parser for Lua.
// Each goroutine must use its own parser (not thread-safe).
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(lua.GetLanguage())
	return p
}

// Source parses src and collects ERROR and MISSING nodes.
func Source(ctx context.Context, src []byte) (*Result, error) {
	return parse(ctx, NewParser(), src)
}

func parse(ctx context.Context, parser *sitter.Parser, src []byte) (*Result, error) {
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing lua")
	}
	defer tree.Close()

	res := &Result{}
	collect(tree.RootNode(), res)
	return res, nil
}

func collect(n *sitter.Node, res *Result) {
	if n == nil {
		return
	}
	if n.IsMissing() || n.Type() == "ERROR" {
		res.add(n)
		return
	}
	if d := dottedLocal(n); d != nil {
		res.add(d)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), res)
	}
}

func (r *Result) add(n *sitter.Node) {
	pt := n.StartPoint()
	r.Errors = append(r.Errors, Position{
		Line:    int(pt.Row) + 1,
		Column:  int(pt.Column) + 1,
		Missing: n.IsMissing(),
	})
}

// dottedLocal returns the declarator of a "local a.b = ..." statement. The
// grammar accepts a field or index target after local, Lua does not.
func dottedLocal(n *sitter.Node) *sitter.Node {
	if n.Type() != "variable_declaration" {
		return nil
	}
	local := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "local":
			local = true
		case "variable_declarator":
			if local && indexed(c) {
				return c
			}
		}
	}
	return nil
}

func indexed(declarator *sitter.Node) bool {
	for i := 0; i < int(declarator.ChildCount()); i++ {
		switch declarator.Child(i).Type() {
		case ".", ":", "[":
			return true
		}
	}
	return false
}

// Files checks every path concurrently and returns results in input order.
// A file that cannot be read is an error.
func Files(ctx context.Context, paths []string) ([]*Result, error) {
	type outcome struct {
		index int
		res   *Result
		err   error
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	work := make(chan int, len(paths))
	outcomes := make(chan outcome, len(paths))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			parser := NewParser()
			for idx := range work {
				src, err := os.ReadFile(paths[idx])
				if err != nil {
					outcomes <- outcome{index: idx, err: errors.Wrapf(err, "reading %s", paths[idx])}
					continue
				}
				res, err := parse(ctx, parser, src)
				if err != nil {
					outcomes <- outcome{index: idx, err: errors.Wrapf(err, "checking %s", paths[idx])}
					continue
				}
				res.Path = paths[idx]
				outcomes <- outcome{index: idx, res: res}
			}
		}()
	}

	for i := range paths {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make([]*Result, len(paths))
	var errs error
	for o := range outcomes {
		if o.err != nil {
			errs = errors.CombineErrors(errs, o.err)
			continue
		}
		results[o.index] = o.res
	}
	if errs != nil {
		return nil, errs
	}
	return results, nil
}
