// Package resolve maps native SWIG type tokens to Lua annotation types.
package resolve

import (
	"github.com/phobologic/swiglls/internal/model"
)

// Tables holds the global lookup maps, keyed by native "::" qualified name.
// They are built once over the whole model so declarations may appear after
// their first use.
type Tables struct {
	Typedefs map[string]*model.TypeAlias
	Classes  map[string]string
	Enums    map[string]string
}

// NewTables walks root once and indexes every typedef, class and enum.
func NewTables(root *model.Scope) *Tables {
	t := &Tables{
		Typedefs: make(map[string]*model.TypeAlias),
		Classes:  make(map[string]string),
		Enums:    make(map[string]string),
	}
	t.index(root)
	return t
}

func (t *Tables) index(s *model.Scope) {
	for _, td := range s.Typedefs {
		t.Typedefs[model.NativeName(td)] = td
	}
	for _, e := range s.Enums {
		t.Enums[model.NativeName(e)] = EnumAnnotation(e)
	}
	for _, c := range s.Classes {
		t.Classes[model.NativeName(c)] = model.QualifiedName(c)
		t.index(c)
	}
	for _, ns := range s.Namespaces {
		t.index(ns)
	}
}

// EnumAnnotation returns the annotation name declared for an enum.
func EnumAnnotation(e *model.EnumType) string {
	return model.QualifiedName(e) + "Enum"
}
