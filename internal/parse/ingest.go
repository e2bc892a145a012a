package parse

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/phobologic/swiglls/internal/diag"
	"github.com/phobologic/swiglls/internal/model"
)

// DefaultStaticMarker is the SWIG view attribute of static member functions.
const DefaultStaticMarker = "staticmemberfunctionHandler"

// Options tunes how declarations are read.
type Options struct {
	// StaticMarker is the "view" value marking a static member function.
	StaticMarker string
	// CallbackTypes are typedef targets rewritten to the Lua "function" type.
	CallbackTypes []string
}

// DefaultOptions returns the options matching stock SWIG Lua output.
func DefaultOptions() Options {
	return Options{
		StaticMarker:  DefaultStaticMarker,
		CallbackTypes: []string{"SWIGLUA_REF"},
	}
}

// Module is the raw result of ingesting one binding module.
type Module struct {
	Name string
	Root *model.Scope
}

// ErrNoModule is returned when a document has no include/module pair.
var ErrNoModule = errors.New("no include/module node found")

// Ingest walks a decoded SWIG document and collects every public
// declaration into an unnamed root scope. Structural defects are recorded in
// rep and never abort the walk.
func Ingest(doc *Node, rep *diag.Report, opts Options) (*Module, error) {
	include, module := findModule(doc)
	if include == nil {
		return nil, errors.WithHint(ErrNoModule, "generate the input with `swig -lua -xml`")
	}

	in := &ingester{rep: rep, opts: opts}
	if in.opts.StaticMarker == "" {
		in.opts.StaticMarker = DefaultStaticMarker
	}

	name, _ := module.Attr("name")
	root := model.NewNamespace("")
	for _, child := range include.Children {
		in.visit(child, root)
	}
	return &Module{Name: name, Root: root}, nil
}

// findModule returns the first include node holding a module child, depth first.
func findModule(n *Node) (include, module *Node) {
	if n.Name == "include" {
		for _, c := range n.Children {
			if c.Name == "module" {
				return n, c
			}
		}
	}
	for _, c := range n.Children {
		if inc, mod := findModule(c); inc != nil {
			return inc, mod
		}
	}
	return nil, nil
}

type ingester struct {
	rep  *diag.Report
	opts Options
}

func isPublic(n *Node) bool {
	access, ok := n.Attr("access")
	return !ok || access == "public"
}

func (in *ingester) visit(n *Node, cur *model.Scope) {
	switch n.Name {
	case "class":
		in.visitClass(n, cur)
	case "cdecl":
		if !isPublic(n) {
			return
		}
		kind, _ := n.Attr("kind")
		switch kind {
		case "function":
			cur.Add(in.function(n))
		case "variable":
			name, _ := n.Attr("name")
			cur.Add(&model.Var{Name: name, Type: declType(n)})
		case "typedef":
			cur.Add(in.typedef(n))
		}
	case "constructor":
		if !isPublic(n) {
			return
		}
		cur.Add(&model.Func{
			Name:        "new",
			SymName:     "new",
			Static:      true,
			Constructor: true,
			Overloads:   []*model.Overload{{Params: params(n)}},
		})
	case "template":
	case "enum":
		in.visitEnum(n, cur)
	default:
		for _, c := range n.Children {
			in.visit(c, cur)
		}
	}
}

func (in *ingester) visitClass(n *Node, cur *model.Scope) {
	name, _ := n.Attr("name")
	symName, ok := n.Attr("sym_name")
	if !ok || symName == "" {
		in.rep.AddMalformed("class", name, "missing sym_name")
		return
	}

	class := model.NewClass(name, symName)
	class.Bases = n.Bases
	for _, c := range n.Children {
		in.visit(c, class)
	}

	// A class holding only one enum is how enum-class idioms are bound;
	// surface it as a flat enum named after the class.
	if len(class.Enums) == 1 && len(class.Classes) == 0 && len(class.Funcs) == 0 {
		e := class.Enums[0]
		e.Name = class.Name
		e.SymName = class.SymName
		cur.Add(e)
		return
	}
	cur.Add(class)
}

func (in *ingester) visitEnum(n *Node, cur *model.Scope) {
	symName, ok := n.Attr("sym_name")
	if !ok || symName == "" {
		name, _ := n.Attr("name")
		in.rep.AddMalformed("enum", name, "missing sym_name")
		return
	}

	e := &model.EnumType{Name: symName, SymName: symName}
	for _, c := range n.Children {
		if c.Name != "enumitem" {
			continue
		}
		itemName, _ := c.Attr("sym_name")
		raw, _ := c.Attr("enumvalueex")
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			v = -1
		}
		e.Values = append(e.Values, model.EnumValue{Name: itemName, Value: v})
	}
	cur.Add(e)
}

func (in *ingester) function(n *Node) *model.Func {
	name, _ := n.Attr("name")
	symName, ok := n.Attr("sym_name")
	if !ok || symName == "" {
		symName = name
	}
	view, _ := n.Attr("view")
	return &model.Func{
		Name:      name,
		SymName:   symName,
		Static:    view == in.opts.StaticMarker,
		Overloads: []*model.Overload{{Params: params(n), Return: returnType(n)}},
	}
}

func (in *ingester) typedef(n *Node) *model.TypeAlias {
	name, _ := n.Attr("name")
	target, _ := n.Attr("type")
	for _, cb := range in.opts.CallbackTypes {
		if target == cb {
			target = "function"
			break
		}
	}
	decl, _ := n.Attr("decl")
	return &model.TypeAlias{Name: name, Target: target, Pointer: strings.HasPrefix(decl, "p.")}
}

func params(n *Node) []model.Param {
	ps := make([]model.Param, 0, len(n.Parms))
	for _, p := range n.Parms {
		ps = append(ps, model.Param{Type: p["type"], Name: p["name"], Default: p["value"]})
	}
	return ps
}

// declType folds the declarator into the base type, e.g. decl "p." and type
// "int" become "p.int".
func declType(n *Node) string {
	typ, _ := n.Attr("type")
	decl, _ := n.Attr("decl")
	return decl + typ
}

// returnType returns the function's result token, including any pointer or
// reference declarators that follow the parameter list in decl.
func returnType(n *Node) string {
	typ, ok := n.Attr("type")
	if !ok {
		return ""
	}
	decl, _ := n.Attr("decl")
	quals, _ := model.SplitType(decl + "x")
	var prefix strings.Builder
	seenFunc := false
	for _, q := range quals {
		if strings.HasPrefix(q, "f(") && !seenFunc {
			seenFunc = true
			continue
		}
		if seenFunc {
			prefix.WriteString(q)
			prefix.WriteByte('.')
		}
	}
	return prefix.String() + typ
}
