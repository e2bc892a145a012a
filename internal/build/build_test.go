package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/swiglls/internal/model"
)

func fn(name string, params ...string) *model.Func {
	o := &model.Overload{}
	for i, p := range params {
		o.Params = append(o.Params, model.Param{Type: p, Name: string(rune('a' + i))})
	}
	return &model.Func{Name: name, SymName: name, Overloads: []*model.Overload{o}}
}

func TestSynthesizeNamespaces(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	raw.Add(model.NewClass("Physics::Body", "Body"))
	raw.Add(model.NewClass("Foo", "Foo"))
	raw.Add(fn("Physics::step", "float"))
	raw.Add(fn("Audio::Mixer::play"))
	raw.Add(&model.EnumType{Name: "Physics::Layer", SymName: "Layer"})
	raw.Add(&model.Var{Name: "gravity", Type: "float"})

	top := SynthesizeNamespaces(raw)

	assert.True(t, top.IsRoot())
	require.Len(t, top.Classes, 1)
	assert.Equal(t, "Foo", top.Classes[0].Name)
	require.Len(t, top.Variables, 1)

	require.Len(t, top.Namespaces, 2)
	physics := top.Namespaces[0]
	assert.Equal(t, "Physics", physics.Name)
	assert.Equal(t, model.Namespace, physics.Kind())
	require.Len(t, physics.Classes, 1)
	assert.Equal(t, "Body", physics.Classes[0].Name)
	require.Len(t, physics.Funcs, 1)
	assert.Equal(t, "step", physics.Funcs[0].Name)
	require.Len(t, physics.Enums, 1)
	assert.Equal(t, "Layer", physics.Enums[0].Name)

	// Only the first separator is split on.
	audio := top.Namespaces[1]
	assert.Equal(t, "Audio", audio.Name)
	require.Len(t, audio.Funcs, 1)
	assert.Equal(t, "Mixer::play", audio.Funcs[0].Name)
	assert.Empty(t, audio.Namespaces)
}

func TestConsolidateMergesOverloads(t *testing.T) {
	t.Parallel()

	class := model.NewClass("Foo", "Foo")
	class.Add(fn("Bar", "int"))
	class.Add(fn("Baz"))
	class.Add(fn("Bar", "float", "float"))
	class.Add(fn("Bar", "p.char"))
	class.Add(fn(""))

	root := model.NewNamespace("")
	root.Add(class)
	Consolidate(root)

	require.Len(t, class.Funcs, 2)
	bar := class.Funcs[0]
	assert.Equal(t, "Bar", bar.Name)
	require.Len(t, bar.Overloads, 3)
	assert.Equal(t, "int", bar.Overloads[0].Params[0].Type)
	assert.Len(t, bar.Overloads[1].Params, 2)
	assert.Equal(t, "p.char", bar.Overloads[2].Params[0].Type)
	assert.Equal(t, "Baz", class.Funcs[1].Name)
}

func TestLinkSetsParentsAndSorts(t *testing.T) {
	t.Parallel()

	root := model.NewNamespace("")
	ns := model.NewNamespace("Physics")
	root.Add(ns)
	class := model.NewClass("Body", "Body")
	ns.Add(class)
	class.Add(fn("zeta"))
	class.Add(fn("alpha"))
	class.Add(&model.Var{Name: "y"})
	class.Add(&model.Var{Name: "x"})
	class.Add(model.NewClass("Z", "Z"))
	class.Add(model.NewClass("A", "A"))
	class.Add(&model.TypeAlias{Name: "t2"})
	class.Add(&model.TypeAlias{Name: "t1"})

	Link(root)

	assert.Nil(t, root.Parent())
	assert.Same(t, root, ns.Parent())
	assert.Same(t, ns, class.Parent())
	assert.Equal(t, []string{"alpha", "zeta"}, []string{class.Funcs[0].Name, class.Funcs[1].Name})
	assert.Equal(t, []string{"x", "y"}, []string{class.Variables[0].Name, class.Variables[1].Name})
	assert.Equal(t, []string{"A", "Z"}, []string{class.Classes[0].Name, class.Classes[1].Name})
	// Typedefs keep discovery order.
	assert.Equal(t, "t2", class.Typedefs[0].Name)

	for _, child := range class.Children() {
		assert.Same(t, class, child.Parent())
	}
	assert.Equal(t, "Physics.Body.alpha", model.QualifiedName(class.Funcs[0]))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	raw.Add(fn("Physics::step", "float"))
	raw.Add(fn("Physics::step", "float", "int"))
	raw.Add(model.NewClass("Physics::Body", "Body"))

	root := Build(raw)

	require.Len(t, root.Namespaces, 1)
	physics := root.Namespaces[0]
	assert.Same(t, root, physics.Parent())
	require.Len(t, physics.Funcs, 1)
	assert.Len(t, physics.Funcs[0].Overloads, 2)
	assert.Equal(t, "Physics::Body", model.NativeName(physics.Classes[0]))
	assert.Equal(t, "Physics.Body", model.QualifiedName(physics.Classes[0]))
}
