// Package build turns the raw ingest tree into the final symbol model:
// namespaces are synthesized from qualified names, overloads are merged, and
// every item is linked to its parent and sorted.
package build

import (
	"sort"
	"strings"

	"github.com/phobologic/swiglls/internal/model"
)

// Build runs namespace synthesis, overload consolidation, and parent
// linkage with sorting, in that order. It returns the new top-level
// namespace; raw must not be used afterwards.
func Build(raw *model.Scope) *model.Scope {
	root := SynthesizeNamespaces(raw)
	Consolidate(root)
	Link(root)
	return root
}

// SynthesizeNamespaces moves every immediate child of raw whose declared name
// is qualified under a namespace named after the part before the first "::",
// stripping that prefix. Only one level is derived: "A::B::f" lands in A as
// "B::f".
func SynthesizeNamespaces(raw *model.Scope) *model.Scope {
	top := model.NewNamespace("")
	byName := make(map[string]*model.Scope)
	var order []*model.Scope

	for _, child := range raw.Children() {
		prefix, rest, ok := strings.Cut(child.DeclaredName(), model.Separator)
		if !ok {
			top.Add(child)
			continue
		}
		ns, exists := byName[prefix]
		if !exists {
			ns = model.NewNamespace(prefix)
			byName[prefix] = ns
			order = append(order, ns)
		}
		rename(child, rest)
		ns.Add(child)
	}

	for _, ns := range order {
		top.Add(ns)
	}
	return top
}

func rename(item model.Item, name string) {
	switch it := item.(type) {
	case *model.Scope:
		it.Name = name
	case *model.Func:
		it.Name = name
	case *model.Var:
		it.Name = name
	case *model.TypeAlias:
		it.Name = name
	case *model.EnumType:
		it.Name = name
	}
}

// Consolidate merges functions sharing a declared name within every scope.
// The first occurrence keeps its place and collects the later overloads.
// Functions without a declared name are dropped.
func Consolidate(s *model.Scope) {
	byName := make(map[string]*model.Func, len(s.Funcs))
	merged := s.Funcs[:0]
	for _, f := range s.Funcs {
		if f.Name == "" {
			continue
		}
		if canon, ok := byName[f.Name]; ok {
			canon.Overloads = append(canon.Overloads, f.Overloads...)
			continue
		}
		byName[f.Name] = f
		merged = append(merged, f)
	}
	s.Funcs = merged

	for _, ns := range s.Namespaces {
		Consolidate(ns)
	}
	for _, c := range s.Classes {
		Consolidate(c)
	}
}

// Link sets every item's parent top-down and sorts each scope's namespaces,
// classes, functions and variables by symbolic name. Typedefs and enums keep
// discovery order.
func Link(s *model.Scope) {
	sortBySym(s.Namespaces)
	sortBySym(s.Classes)
	sortBySym(s.Funcs)
	sortBySym(s.Variables)

	for _, child := range s.Children() {
		model.SetParent(child, s)
		if sub, ok := child.(*model.Scope); ok {
			Link(sub)
		}
	}
}

func sortBySym[T model.Item](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SymbolicName() < items[j].SymbolicName()
	})
}
