// Package model defines the symbol model built from a SWIG interface description.
package model

import "strings"

// Kind indicates the syntactic kind of an item.
type Kind string

const (
	Namespace Kind = "namespace"
	Class     Kind = "class"
	Function  Kind = "function"
	Variable  Kind = "variable"
	Typedef   Kind = "typedef"
	Enum      Kind = "enum"
)

// Separator is the native namespace separator used in declared names.
const Separator = "::"

// Item is implemented by every entity of the symbol model.
type Item interface {
	Kind() Kind
	DeclaredName() string
	SymbolicName() string
	Parent() *Scope
	setParent(*Scope)
}

// link holds the non-owning back reference to the containing scope.
type link struct {
	parent *Scope
}

func (l *link) Parent() *Scope     { return l.parent }
func (l *link) setParent(p *Scope) { l.parent = p }

// Scope is a namespace or a class. Both hold the same child collections and
// differ only by kind.
type Scope struct {
	link
	kind Kind

	Name    string
	SymName string
	Bases   []string

	Namespaces []*Scope
	Classes    []*Scope
	Funcs      []*Func
	Variables  []*Var
	Typedefs   []*TypeAlias
	Enums      []*EnumType
}

// NewNamespace returns an empty namespace. An empty name denotes the root.
func NewNamespace(name string) *Scope {
	return &Scope{kind: Namespace, Name: name, SymName: name}
}

// NewClass returns an empty class.
func NewClass(name, symName string) *Scope {
	return &Scope{kind: Class, Name: name, SymName: symName}
}

func (s *Scope) Kind() Kind           { return s.kind }
func (s *Scope) DeclaredName() string { return s.Name }
func (s *Scope) SymbolicName() string { return s.SymName }

// IsRoot reports whether s is the unnamed top-level namespace.
func (s *Scope) IsRoot() bool {
	return s.kind == Namespace && s.SymName == ""
}

// Children returns the scope's items in emission order.
func (s *Scope) Children() []Item {
	items := make([]Item, 0, len(s.Namespaces)+len(s.Classes)+len(s.Funcs)+
		len(s.Variables)+len(s.Typedefs)+len(s.Enums))
	for _, c := range s.Namespaces {
		items = append(items, c)
	}
	for _, c := range s.Classes {
		items = append(items, c)
	}
	for _, f := range s.Funcs {
		items = append(items, f)
	}
	for _, v := range s.Variables {
		items = append(items, v)
	}
	for _, t := range s.Typedefs {
		items = append(items, t)
	}
	for _, e := range s.Enums {
		items = append(items, e)
	}
	return items
}

// Add appends item to the collection matching its kind.
func (s *Scope) Add(item Item) {
	switch it := item.(type) {
	case *Scope:
		if it.kind == Namespace {
			s.Namespaces = append(s.Namespaces, it)
		} else {
			s.Classes = append(s.Classes, it)
		}
	case *Func:
		s.Funcs = append(s.Funcs, it)
	case *Var:
		s.Variables = append(s.Variables, it)
	case *TypeAlias:
		s.Typedefs = append(s.Typedefs, it)
	case *EnumType:
		s.Enums = append(s.Enums, it)
	}
}

// Empty reports whether the scope holds no items.
func (s *Scope) Empty() bool {
	return len(s.Namespaces) == 0 && len(s.Classes) == 0 && len(s.Funcs) == 0 &&
		len(s.Variables) == 0 && len(s.Typedefs) == 0 && len(s.Enums) == 0
}

// Param is one parameter of an overload.
type Param struct {
	Type    string
	Name    string
	Default string
}

// Optional reports whether the parameter has a default value.
func (p Param) Optional() bool { return p.Default != "" }

// Overload is one concrete signature of a function.
type Overload struct {
	Params []Param
	Return string
}

// Func groups every overload sharing one declared name.
type Func struct {
	link
	Name    string
	SymName string
	Static  bool

	// Constructor marks the synthesized "new" function; it returns its class.
	Constructor bool
	Overloads   []*Overload
}

func (f *Func) Kind() Kind           { return Function }
func (f *Func) DeclaredName() string { return f.Name }
func (f *Func) SymbolicName() string { return f.SymName }

// Var is a variable at namespace or class scope.
type Var struct {
	link
	Name string
	Type string
}

func (v *Var) Kind() Kind           { return Variable }
func (v *Var) DeclaredName() string { return v.Name }
func (v *Var) SymbolicName() string { return v.Name }

// TypeAlias rewrites its own name to Target during type resolution.
type TypeAlias struct {
	link
	Name    string
	Target  string
	Pointer bool
}

func (t *TypeAlias) Kind() Kind           { return Typedef }
func (t *TypeAlias) DeclaredName() string { return t.Name }
func (t *TypeAlias) SymbolicName() string { return t.Name }

// EnumValue is one named constant of an enum.
type EnumValue struct {
	Name  string
	Value int
}

// EnumType is a named, ordered set of integer constants.
type EnumType struct {
	link
	Name    string
	SymName string
	Values  []EnumValue
}

func (e *EnumType) Kind() Kind           { return Enum }
func (e *EnumType) DeclaredName() string { return e.Name }
func (e *EnumType) SymbolicName() string { return e.SymName }

// SetParent links item to its containing scope.
func SetParent(item Item, parent *Scope) {
	item.setParent(parent)
}

// QualifiedName joins symbolic names from the outermost named scope down to
// item with dots, e.g. "Physics.Body.new".
func QualifiedName(item Item) string {
	p := item.Parent()
	if p == nil || p.IsRoot() {
		return item.SymbolicName()
	}
	return QualifiedName(p) + "." + item.SymbolicName()
}

// NativeName joins declared names with "::", e.g. "Physics::Body". A declared
// name already carrying its parent's native prefix is not prefixed again.
func NativeName(item Item) string {
	name := item.DeclaredName()
	p := item.Parent()
	if p == nil || p.IsRoot() {
		return name
	}
	prefix := NativeName(p) + Separator
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}
