package resolve

import (
	"strings"

	"github.com/phobologic/swiglls/internal/diag"
	"github.com/phobologic/swiglls/internal/model"
)

// Annotation types understood by the Lua language server.
const (
	Integer  = "integer"
	Number   = "number"
	Boolean  = "boolean"
	String   = "string"
	Any      = "any"
	Function = "function"
	Userdata = "userdata"
)

// Status is the outcome of resolving one type token.
type Status int

const (
	// Unresolved means the token maps to no known type.
	Unresolved Status = iota
	// Resolved means the returned annotation is usable.
	Resolved
	// Suppressed means the type is known but takes no annotation (void, varargs).
	Suppressed
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Suppressed:
		return "suppressed"
	default:
		return "unresolved"
	}
}

// VariadicMarker is the SWIG type token of a C "..." parameter.
const VariadicMarker = "v(...)"

const enumSuffix = "::Enum"

// maxAliasDepth bounds typedef chains so a cyclic definition terminates.
const maxAliasDepth = 64

var primitives = map[string]string{
	"int":                Integer,
	"signed int":         Integer,
	"unsigned int":       Integer,
	"unsigned":           Integer,
	"short":              Integer,
	"signed short":       Integer,
	"unsigned short":     Integer,
	"long":               Integer,
	"signed long":        Integer,
	"unsigned long":      Integer,
	"long long":          Integer,
	"signed long long":   Integer,
	"unsigned long long": Integer,
	"signed char":        Integer,
	"unsigned char":      Integer,
	"size_t":             Integer,
	"std::size_t":        Integer,
	"ssize_t":            Integer,
	"ptrdiff_t":          Integer,
	"intptr_t":           Integer,
	"uintptr_t":          Integer,
	"int8_t":             Integer,
	"int16_t":            Integer,
	"int32_t":            Integer,
	"int64_t":            Integer,
	"uint8_t":            Integer,
	"uint16_t":           Integer,
	"uint32_t":           Integer,
	"uint64_t":           Integer,
	"float":              Number,
	"double":             Number,
	"long double":        Number,
	"bool":               Boolean,
	"char":               String,
	"std::string":        String,
	"string":             String,
}

var suppressed = map[string]bool{
	"void":         true,
	VariadicMarker: true,
}

// Options configures a Resolver.
type Options struct {
	// SmartPointers lists template names treated as owning pointers to their
	// single argument, e.g. "std::shared_ptr".
	SmartPointers []string
	// Types maps native base names to annotation types ahead of the built-in
	// rules.
	Types map[string]string
}

// DefaultOptions returns the standard smart pointer set and no extra types.
func DefaultOptions() Options {
	return Options{
		SmartPointers: []string{
			"std::shared_ptr", "std::unique_ptr", "std::weak_ptr",
			"shared_ptr", "unique_ptr", "weak_ptr",
		},
	}
}

// Resolver turns native type tokens into annotation types.
type Resolver struct {
	tables *Tables
	rep    *diag.Report
	opts   Options
}

// New returns a resolver reading from tables. Unresolved tokens are recorded
// in rep.
func New(tables *Tables, rep *diag.Report, opts Options) *Resolver {
	return &Resolver{tables: tables, rep: rep, opts: opts}
}

// Resolve maps a SWIG type token such as "p.q(const).char" to an annotation
// type. On failure the native base name left after stripping qualifiers,
// typedefs and smart pointers is recorded in the report.
func (r *Resolver) Resolve(token string) (string, Status) {
	name, st := r.resolve(token)
	if st == Unresolved {
		r.rep.AddUnresolved(name)
		return "", Unresolved
	}
	return name, st
}

// ClassAnnotation returns the annotation name of a native class, if known.
func (r *Resolver) ClassAnnotation(native string) (string, bool) {
	name, ok := r.tables.Classes[native]
	return name, ok
}

// resolve returns the annotation, or the base name it gave up on when the
// status is Unresolved.
func (r *Resolver) resolve(token string) (string, Status) {
	var pointer bool
	quals, base := model.SplitType(token)
	if isFunctionType(quals, &pointer) {
		return Function, Resolved
	}

	for depth := 0; ; depth++ {
		if depth > maxAliasDepth {
			return base, Unresolved
		}
		if a, ok := r.opts.Types[base]; ok {
			return a, Resolved
		}
		if inner, ok := r.unwrapSmartPointer(base); ok {
			pointer = true
			quals, base = model.SplitType(inner)
			if isFunctionType(quals, &pointer) {
				return Function, Resolved
			}
			continue
		}
		td, ok := r.tables.Typedefs[base]
		if !ok {
			break
		}
		if td.Pointer {
			return Any, Resolved
		}
		quals, base = model.SplitType(td.Target)
		if isFunctionType(quals, &pointer) {
			return Function, Resolved
		}
	}

	if pointer {
		switch base {
		case "char":
			return String, Resolved
		case Function, Userdata:
			return base, Resolved
		}
		if c, ok := r.tables.Classes[base]; ok {
			return c, Resolved
		}
		return Any, Resolved
	}

	if p, ok := primitives[base]; ok {
		return p, Resolved
	}
	if suppressed[base] {
		return "", Suppressed
	}
	if base == Function || base == Userdata {
		return base, Resolved
	}

	if e, ok := r.tables.Enums[base]; ok {
		return e, Resolved
	}
	stripped := strings.TrimSuffix(base, enumSuffix)
	if e, ok := r.tables.Enums[stripped]; ok {
		return e, Resolved
	}
	if c, ok := r.tables.Classes[stripped]; ok {
		return c, Resolved
	}
	return base, Unresolved
}

// isFunctionType scans qualifiers, setting *pointer for pointer segments.
// Arrays resolve as their element type. It reports whether a function segment
// was found.
func isFunctionType(quals []string, pointer *bool) bool {
	for _, q := range quals {
		switch {
		case strings.HasPrefix(q, "f("):
			return true
		case q == "p":
			*pointer = true
		}
	}
	return false
}

// unwrapSmartPointer returns T for tokens of the form "std::shared_ptr<(T)>".
func (r *Resolver) unwrapSmartPointer(base string) (string, bool) {
	for _, sp := range r.opts.SmartPointers {
		rest, ok := strings.CutPrefix(base, sp+"<(")
		if !ok {
			continue
		}
		if inner, ok := strings.CutSuffix(rest, ")>"); ok {
			return inner, true
		}
	}
	return "", false
}
