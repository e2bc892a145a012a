// Package dump renders the built symbol model as YAML.
package dump

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/swiglls/internal/model"
)

type scopeView struct {
	Kind       string        `yaml:"kind"`
	Name       string        `yaml:"name,omitempty"`
	Qualified  string        `yaml:"qualified,omitempty"`
	Bases      []string      `yaml:"bases,omitempty"`
	Namespaces []scopeView   `yaml:"namespaces,omitempty"`
	Classes    []scopeView   `yaml:"classes,omitempty"`
	Functions  []funcView    `yaml:"functions,omitempty"`
	Variables  []varView     `yaml:"variables,omitempty"`
	Typedefs   []typedefView `yaml:"typedefs,omitempty"`
	Enums      []enumView    `yaml:"enums,omitempty"`
}

type funcView struct {
	Name        string         `yaml:"name"`
	Static      bool           `yaml:"static,omitempty"`
	Constructor bool           `yaml:"constructor,omitempty"`
	Overloads   []overloadView `yaml:"overloads"`
}

type overloadView struct {
	Params []paramView `yaml:"params,omitempty"`
	Return string      `yaml:"return,omitempty"`
}

type paramView struct {
	Name    string `yaml:"name,omitempty"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
}

type varView struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type typedefView struct {
	Name    string `yaml:"name"`
	Target  string `yaml:"target"`
	Pointer bool   `yaml:"pointer,omitempty"`
}

type enumView struct {
	Name   string      `yaml:"name"`
	Values []valueView `yaml:"values,omitempty"`
}

type valueView struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

// YAML writes root and everything below it to w. Types are shown in C++
// notation.
func YAML(w io.Writer, root *model.Scope) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scope(root)); err != nil {
		return errors.Wrap(err, "encoding model")
	}
	return errors.Wrap(enc.Close(), "flushing model")
}

func scope(s *model.Scope) scopeView {
	v := scopeView{Kind: string(s.Kind()), Name: s.SymName, Bases: s.Bases}
	if !s.IsRoot() {
		v.Qualified = model.QualifiedName(s)
	}
	for _, ns := range s.Namespaces {
		v.Namespaces = append(v.Namespaces, scope(ns))
	}
	for _, c := range s.Classes {
		v.Classes = append(v.Classes, scope(c))
	}
	for _, f := range s.Funcs {
		fv := funcView{Name: f.SymName, Static: f.Static, Constructor: f.Constructor}
		for _, o := range f.Overloads {
			ov := overloadView{Return: model.CppType(o.Return)}
			for _, p := range o.Params {
				ov.Params = append(ov.Params, paramView{Name: p.Name, Type: model.CppType(p.Type), Default: p.Default})
			}
			fv.Overloads = append(fv.Overloads, ov)
		}
		v.Functions = append(v.Functions, fv)
	}
	for _, vr := range s.Variables {
		v.Variables = append(v.Variables, varView{Name: vr.Name, Type: model.CppType(vr.Type)})
	}
	for _, td := range s.Typedefs {
		v.Typedefs = append(v.Typedefs, typedefView{Name: td.Name, Target: model.CppType(td.Target), Pointer: td.Pointer})
	}
	for _, e := range s.Enums {
		ev := enumView{Name: e.SymName}
		for _, val := range e.Values {
			ev.Values = append(ev.Values, valueView{Name: val.Name, Value: val.Value})
		}
		v.Enums = append(v.Enums, ev)
	}
	return v
}
