package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phobologic/swiglls/internal/build"
	"github.com/phobologic/swiglls/internal/diag"
	"github.com/phobologic/swiglls/internal/model"
	"github.com/phobologic/swiglls/internal/resolve"
)

func overload(ret string, params ...model.Param) *model.Overload {
	return &model.Overload{Params: params, Return: ret}
}

func method(name string, static bool, overloads ...*model.Overload) *model.Func {
	return &model.Func{Name: name, SymName: name, Static: static, Overloads: overloads}
}

func render(t *testing.T, raw *model.Scope, module string) ([]File, *diag.Report) {
	t.Helper()
	root := build.Build(raw)
	rep := diag.New()
	res := resolve.New(resolve.NewTables(root), rep, resolve.DefaultOptions())
	return New(res, rep).Files(root, module), rep
}

func fileNamed(t *testing.T, files []File, name string) File {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return f
		}
	}
	require.Failf(t, "file not emitted", "%s", name)
	return File{}
}

func TestOverloadRoundTrip(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	foo := model.NewClass("Foo", "Foo")
	foo.Add(method("Bar", false, overload("void", model.Param{Type: "int", Name: "a"})))
	foo.Add(method("Bar", false, overload("void",
		model.Param{Type: "float", Name: "x"},
		model.Param{Type: "float", Name: "y"})))
	raw.Add(foo)

	files, _ := render(t, raw, "demo")
	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, "demo.lua", f.Name)

	want := []string{
		"---",
		"---@meta",
		"---@class Foo",
		"Foo = {}",
		"",
		"---@param a integer # int",
		"function Foo:Bar(a) end",
		"",
		"---@param x number # float",
		"---@param y number # float",
		"function Foo:Bar(x, y) end",
		"",
	}
	assert.Equal(t, want, f.Lines)
	assert.Equal(t, []Outcome{{Function: "Foo:Bar", Overload: 0}, {Function: "Foo:Bar", Overload: 1}}, f.Outcomes)
}

func TestEnumBlock(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	raw.Add(&model.EnumType{Name: "Color", SymName: "Color", Values: []model.EnumValue{
		{Name: "Red", Value: 0}, {Name: "Green", Value: 1}, {Name: "Blue", Value: 2},
	}})
	raw.Add(&model.EnumType{Name: "Empty", SymName: "Empty"})

	files, _ := render(t, raw, "demo")
	f := fileNamed(t, files, "demo.lua")
	assert.Equal(t, []string{
		"---",
		"---@meta",
		"---@enum ColorEnum",
		"Color = { Red = 0, Green = 1, Blue = 2 }",
		"",
		"---@enum EmptyEnum",
		"Empty = {}",
		"",
	}, f.Lines)
}

func TestUnresolvedOverloadSkipped(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	foo := model.NewClass("Foo", "Foo")
	foo.Add(method("Use", false,
		overload("void", model.Param{Type: "r.Widget", Name: "w"}),
		overload("void", model.Param{Type: "int", Name: "n"})))
	foo.Add(method("Make", true, overload("Widget")))
	foo.Add(method("Take", false, overload("void", model.Param{Type: "Widget", Name: "w"})))
	foo.Add(method("Peek", false, overload("void", model.Param{Type: "r.q(const).Widget", Name: "w"})))
	raw.Add(foo)

	files, rep := render(t, raw, "demo")
	f := fileNamed(t, files, "demo.lua")

	content := f.Content()
	assert.NotContains(t, content, "Widget")
	assert.NotContains(t, content, "Foo.Make")
	assert.NotContains(t, content, "Foo:Take")
	assert.NotContains(t, content, "Foo:Peek")
	assert.Contains(t, content, "---@param n integer # int\nfunction Foo:Use(n) end")
	assert.Equal(t, 1, strings.Count(content, "function Foo:Use"))

	assert.Equal(t, []string{"Widget"}, rep.Unresolved())
	assert.Len(t, rep.Skipped, 4)

	core, logs := observer.New(zapcore.DebugLevel)
	rep.Log(zap.New(core).Sugar())
	widget := 0
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			if s, ok := v.(string); ok && s == "Widget" {
				widget++
			}
		}
	}
	assert.Equal(t, 1, widget)
}

func TestNamespaceFile(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	body := model.NewClass("Physics::Body", "Body")
	body.Bases = []string{"Shape"}
	body.Add(&model.Var{Name: "mass", Type: "float"})
	body.Add(&model.Var{Name: "owner", Type: "Widget"})
	body.Add(&model.Func{Name: "new", SymName: "new", Static: true, Constructor: true,
		Overloads: []*model.Overload{overload("", model.Param{Type: "float", Name: "mass", Default: "1.0"})}})
	body.Add(method("count", true, overload("int")))
	raw.Add(body)
	raw.Add(model.NewClass("Physics::Shape", "Shape"))
	raw.Add(&model.Func{Name: "Physics::step", SymName: "step",
		Overloads: []*model.Overload{overload("void", model.Param{Type: "double", Name: "dt"})}})
	raw.Add(&model.Var{Name: "Physics::gravity", Type: "float"})

	files, _ := render(t, raw, "demo")
	require.Len(t, files, 1, "no top-level file without top-level declarations")
	f := fileNamed(t, files, "Physics.lua")

	assert.Equal(t, []string{
		"---",
		"---@meta",
		"local Physics = {}",
		"",
		"---@class Physics.Body : Physics.Shape",
		"---@field mass number",
		"Physics.Body = {}",
		"",
		"---@return integer",
		"function Physics.Body.count() end",
		"",
		"---@param mass? number # float",
		"---@return Physics.Body",
		"function Physics.Body.new(mass) end",
		"",
		"---@class Physics.Shape",
		"Physics.Shape = {}",
		"",
		"---@param dt number # double",
		"function Physics.step(dt) end",
		"",
		"---@type number",
		"Physics.gravity = nil",
		"",
		"return Physics",
	}, f.Lines)
}

func TestTopLevelAndNamespaceSeparated(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	raw.Add(model.NewClass("Physics::Body", "Body"))
	raw.Add(model.NewClass("Foo", "Foo"))
	raw.Add(method("hello", false, overload("p.q(const).char")))

	files, _ := render(t, raw, "Physics")
	require.Len(t, files, 2)

	top := files[0]
	assert.Equal(t, "Physics_global.lua", top.Name)
	assert.NotContains(t, top.Content(), "Body")
	assert.Contains(t, top.Content(), "---@return string\nfunction hello() end")
	assert.NotContains(t, top.Content(), "local ")
	assert.NotContains(t, top.Content(), "return Physics")

	ns := files[1]
	assert.Equal(t, "Physics.lua", ns.Name)
	assert.Contains(t, ns.Content(), "---@class Physics.Body\nPhysics.Body = {}")
	assert.NotContains(t, ns.Content(), "Foo")
}

func TestMalformedAndUnnamed(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	raw.Add(method("A::B::deep", false, overload("void")))
	foo := model.NewClass("Foo", "Foo")
	foo.Add(method("Anon", false, overload("void", model.Param{Type: "int"})))
	foo.Add(method("Print", false, overload("void",
		model.Param{Type: "p.q(const).char", Name: "fmt"},
		model.Param{Type: resolve.VariadicMarker})))
	foo.Add(method("Loop", false, overload("void", model.Param{Type: "int", Name: "end"})))
	raw.Add(foo)

	files, rep := render(t, raw, "demo")
	top := fileNamed(t, files, "demo.lua")
	a := fileNamed(t, files, "A.lua")

	assert.NotContains(t, a.Content(), "deep")
	assert.Equal(t, []diag.Malformed{{Kind: "function", Name: "B::deep", Reason: "declared name is still namespace qualified"}}, rep.Malformed)

	content := top.Content()
	assert.NotContains(t, content, "Anon")
	assert.Contains(t, content, "---@param fmt string # const char*\n---@param ... any\nfunction Foo:Print(fmt, ...) end")
	assert.Contains(t, content, "---@param end_ integer # int\nfunction Foo:Loop(end_) end")
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, diag.Skip{Function: "Foo:Anon", Overload: 0, Reason: "parameter 1 has no name"}, rep.Skipped[0])
}

func TestKeywordNames(t *testing.T) {
	t.Parallel()

	raw := model.NewNamespace("")
	foo := model.NewClass("Foo", "Foo")
	foo.Add(method("end", false, overload("void", model.Param{Type: "int", Name: "n"})))
	foo.Add(method("nil", true, overload("bool")))
	raw.Add(foo)
	raw.Add(method("in", false, overload("void")))
	raw.Add(&model.EnumType{Name: "Flow", SymName: "Flow", Values: []model.EnumValue{
		{Name: "begin", Value: 0}, {Name: "end", Value: 1},
	}})
	raw.Add(&model.Var{Name: "Physics::repeat", Type: "int"})

	files, _ := render(t, raw, "demo")
	topFile := fileNamed(t, files, "demo.lua")
	top := topFile.Content()
	assert.Contains(t, top, "---@param n integer # int\nFoo[\"end\"] = function(self, n) end")
	assert.Contains(t, top, "---@return boolean\nFoo[\"nil\"] = function() end")
	assert.Contains(t, top, "_G[\"in\"] = function() end")
	assert.Contains(t, top, `Flow = { begin = 0, ["end"] = 1 }`)
	assert.NotContains(t, top, "function Foo:end")

	nsFile := fileNamed(t, files, "Physics.lua")
	ns := nsFile.Content()
	assert.Contains(t, ns, "---@type integer\nPhysics[\"repeat\"] = nil")
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	files := []File{
		{Name: "a.lua", Lines: []string{"---", "---@meta"}},
		{Name: "b.lua", Lines: []string{"---"}},
	}
	require.NoError(t, Write(dir, files))

	data, err := os.ReadFile(filepath.Join(dir, "a.lua"))
	require.NoError(t, err)
	assert.Equal(t, "---\n---@meta\n", string(data))
	_, err = os.Stat(filepath.Join(dir, "b.lua"))
	assert.NoError(t, err)
}
