// Package emit writes Lua language server annotation files for a symbol model.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/swiglls/internal/diag"
	"github.com/phobologic/swiglls/internal/model"
	"github.com/phobologic/swiglls/internal/resolve"
)

// Header opens every generated file.
var Header = []string{"---", "---@meta"}

// Outcome reports what happened to one overload.
type Outcome struct {
	Function string
	Overload int
	Skipped  bool
	Reason   string
}

// File is one generated annotation file.
type File struct {
	Name     string
	Lines    []string
	Outcomes []Outcome
}

// Content returns the file text with a trailing newline.
func (f *File) Content() string {
	return strings.Join(f.Lines, "\n") + "\n"
}

// Emitter renders namespaces using a resolver for every type it prints.
type Emitter struct {
	res *resolve.Resolver
	rep *diag.Report
}

// New returns an emitter.
func New(res *resolve.Resolver, rep *diag.Report) *Emitter {
	return &Emitter{res: res, rep: rep}
}

// Files renders one file per namespace under root. Declarations placed
// directly in root go to "<module>.lua" as globals, if there are any. The
// top-level file gets a "_global" suffix when its name would clash with a
// namespace file on a case-insensitive file system.
func (e *Emitter) Files(root *model.Scope, module string) []File {
	var files []File
	if hasDeclarations(root) {
		name := module
		if name == "" {
			name = "global"
		}
		for _, ns := range root.Namespaces {
			if strings.EqualFold(ns.SymName, name) {
				name += "_global"
				break
			}
		}
		files = append(files, e.file(root, name))
	}
	for _, ns := range root.Namespaces {
		files = append(files, e.Namespace(ns))
	}
	return files
}

// Namespace renders a single named namespace as a module table.
func (e *Emitter) Namespace(ns *model.Scope) File {
	return e.file(ns, ns.SymName)
}

func hasDeclarations(s *model.Scope) bool {
	return len(s.Classes) > 0 || len(s.Funcs) > 0 || len(s.Variables) > 0 || len(s.Enums) > 0
}

func (e *Emitter) file(s *model.Scope, name string) File {
	w := &writer{e: e}
	w.lines = append(w.lines, Header...)
	if s.IsRoot() {
		w.scope(s)
	} else {
		w.line("local %s = {}", s.SymName)
		w.blank()
		w.scope(s)
		w.line("return %s", s.SymName)
	}
	return File{Name: name + ".lua", Lines: w.lines, Outcomes: w.outcomes}
}

type writer struct {
	e        *Emitter
	lines    []string
	outcomes []Outcome
}

func (w *writer) line(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *writer) blank() {
	w.lines = append(w.lines, "")
}

// scope emits the contents of s in model order. Namespaces directly under
// the root get their own files.
func (w *writer) scope(s *model.Scope) {
	if !s.IsRoot() {
		for _, ns := range s.Namespaces {
			w.line("%s = {}", model.QualifiedName(ns))
			w.blank()
			w.scope(ns)
		}
	}
	for _, c := range s.Classes {
		w.class(c)
		w.scope(c)
	}
	for _, f := range s.Funcs {
		w.function(f, s)
	}
	if s.Kind() == model.Namespace {
		for _, v := range s.Variables {
			w.variable(v)
		}
	}
	for _, en := range s.Enums {
		w.enum(en)
	}
}

func (w *writer) class(c *model.Scope) {
	q := model.QualifiedName(c)
	decl := "---@class " + q
	if bases := w.bases(c); len(bases) > 0 {
		decl += " : " + strings.Join(bases, ", ")
	}
	w.lines = append(w.lines, decl)
	for _, v := range c.Variables {
		if t, st := w.e.res.Resolve(v.Type); st == resolve.Resolved {
			w.line("---@field %s %s", v.Name, t)
		}
	}
	w.line("%s = {}", q)
	w.blank()
}

// bases returns the annotation names of the class's known base classes.
// Base names are tried as written and relative to the enclosing scope.
func (w *writer) bases(c *model.Scope) []string {
	var out []string
	for _, b := range c.Bases {
		if name, ok := w.e.res.ClassAnnotation(b); ok {
			out = append(out, name)
			continue
		}
		if p := c.Parent(); p != nil && !p.IsRoot() {
			if name, ok := w.e.res.ClassAnnotation(model.NativeName(p) + model.Separator + b); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func (w *writer) variable(v *model.Var) {
	t, st := w.e.res.Resolve(v.Type)
	if st != resolve.Resolved {
		return
	}
	w.line("---@type %s", t)
	w.line("%s = nil", field(v.Parent(), v.SymbolicName()))
	w.blank()
}

func (w *writer) enum(en *model.EnumType) {
	w.line("---@enum %s", resolve.EnumAnnotation(en))
	if len(en.Values) == 0 {
		w.line("%s = {}", model.QualifiedName(en))
	} else {
		pairs := make([]string, len(en.Values))
		for i, v := range en.Values {
			pairs[i] = fmt.Sprintf("%s = %d", tableKey(v.Name), v.Value)
		}
		w.line("%s = { %s }", model.QualifiedName(en), strings.Join(pairs, ", "))
	}
	w.blank()
}

func (w *writer) function(f *model.Func, owner *model.Scope) {
	if strings.Contains(f.Name, model.Separator) {
		w.e.rep.AddMalformed("function", f.Name, "declared name is still namespace qualified")
		return
	}

	path := f.SymName
	if !owner.IsRoot() {
		sep := "."
		if owner.Kind() == model.Class && !f.Static {
			sep = ":"
		}
		path = model.QualifiedName(owner) + sep + f.SymName
	}

	for i, o := range f.Overloads {
		block, reason := w.overload(path, f, owner, o)
		if reason != "" {
			w.e.rep.AddSkip(path, i, reason)
			w.outcomes = append(w.outcomes, Outcome{Function: path, Overload: i, Skipped: true, Reason: reason})
			continue
		}
		w.lines = append(w.lines, block...)
		w.outcomes = append(w.outcomes, Outcome{Function: path, Overload: i})
	}
}

// overload renders one signature. Every type is resolved even after the
// first failure so all unresolved tokens reach the report.
func (w *writer) overload(path string, f *model.Func, owner *model.Scope, o *model.Overload) ([]string, string) {
	var (
		block  []string
		names  []string
		reason string
	)
	fail := func(format string, args ...any) {
		if reason == "" {
			reason = fmt.Sprintf(format, args...)
		}
	}

	for i, p := range o.Params {
		if p.Type == resolve.VariadicMarker {
			block = append(block, "---@param ... any")
			names = append(names, "...")
			continue
		}
		t, st := w.e.res.Resolve(p.Type)
		if p.Name == "" {
			fail("parameter %d has no name", i+1)
			continue
		}
		name := luaName(p.Name)
		switch st {
		case resolve.Unresolved:
			fail("parameter %q has an unresolved type", p.Name)
			continue
		case resolve.Suppressed:
			t = resolve.Any
		}
		opt := ""
		if p.Optional() {
			opt = "?"
		}
		block = append(block, fmt.Sprintf("---@param %s%s %s # %s", name, opt, t, model.CppType(p.Type)))
		names = append(names, name)
	}

	switch {
	case f.Constructor:
		block = append(block, "---@return "+model.QualifiedName(owner))
	case o.Return != "":
		t, st := w.e.res.Resolve(o.Return)
		switch st {
		case resolve.Unresolved:
			fail("return type is unresolved")
		case resolve.Resolved:
			block = append(block, "---@return "+t)
		}
	}

	if reason != "" {
		return nil, reason
	}
	block = append(block, declaration(path, f, owner, names), "")
	return block, ""
}

// declaration renders the function line. A keyword name cannot follow "." or
// ":" so it is assigned through an index instead, with an explicit self for
// methods.
func declaration(path string, f *model.Func, owner *model.Scope, names []string) string {
	if !luaKeywords[f.SymName] {
		return fmt.Sprintf("function %s(%s) end", path, strings.Join(names, ", "))
	}
	if owner.Kind() == model.Class && !f.Static {
		names = append([]string{"self"}, names...)
	}
	return fmt.Sprintf("%s = function(%s) end", field(owner, f.SymName), strings.Join(names, ", "))
}

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// field returns the Lua expression naming key name in the table of scope s.
// Keywords are indexed with a string, through _G at the top level.
func field(s *model.Scope, name string) string {
	top := s == nil || s.IsRoot()
	switch {
	case !luaKeywords[name] && top:
		return name
	case !luaKeywords[name]:
		return model.QualifiedName(s) + "." + name
	case top:
		return fmt.Sprintf("_G[%q]", name)
	default:
		return fmt.Sprintf("%s[%q]", model.QualifiedName(s), name)
	}
}

// tableKey renders a table constructor key.
func tableKey(name string) string {
	if luaKeywords[name] {
		return fmt.Sprintf("[%q]", name)
	}
	return name
}

// luaName makes a native parameter name usable as a Lua identifier.
func luaName(name string) string {
	if luaKeywords[name] {
		return name + "_"
	}
	return name
}

// Write stores each file under dir, creating dir if needed.
func Write(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", dir)
	}
	for i := range files {
		path := filepath.Join(dir, files[i].Name)
		if err := os.WriteFile(path, []byte(files[i].Content()), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}
	return nil
}
