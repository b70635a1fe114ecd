package symbol

import "strings"

// TypeShape classifies a resolved type at the boundary with the resolution
// engine. Captured, flexible, integer-literal and intersection types are
// non-denotable: no surface syntax can name them directly.
type TypeShape int

const (
	ShapeClass TypeShape = iota
	ShapeTypeParameter
	ShapeDefinitelyNotNull
	ShapeError
	ShapeDynamic
	ShapeCaptured
	ShapeFlexible
	ShapeIntegerLiteral
	ShapeIntersection
)

func (s TypeShape) String() string {
	switch s {
	case ShapeClass:
		return "class"
	case ShapeTypeParameter:
		return "type-parameter"
	case ShapeDefinitelyNotNull:
		return "definitely-not-null"
	case ShapeError:
		return "error"
	case ShapeDynamic:
		return "dynamic"
	case ShapeCaptured:
		return "captured"
	case ShapeFlexible:
		return "flexible"
	case ShapeIntegerLiteral:
		return "integer-literal"
	case ShapeIntersection:
		return "intersection"
	default:
		return "invalid"
	}
}

// Type is the read-only view of a resolved type. Fields are populated per
// shape: Class for ShapeClass, TypeParam for ShapeTypeParameter, Underlying
// for ShapeDefinitelyNotNull, Text for the rendering of error/dynamic and
// non-denotable shapes.
type Type struct {
	Shape      TypeShape
	Class      *Symbol
	TypeParam  *Symbol
	Underlying *Type
	Args       []*Type
	Nullable   bool
	Text       string
}

// TypeReference is an opaque rendering of a resolved type, used to
// disambiguate callable overloads. Two references are interchangeable iff
// they compare equal.
type TypeReference struct {
	repr string
}

// NewTypeReference wraps an already-rendered reference, e.g. one read back
// from a serialized identifier.
func NewTypeReference(repr string) TypeReference {
	return TypeReference{repr: repr}
}

func (r TypeReference) String() string {
	return r.repr
}

// RenderTypeReference produces the reference for a resolved type. It is total
// over every shape: even non-denotable types render (they may appear as
// parameter types, where a textual form is enough to keep overloads apart).
func RenderTypeReference(t *Type) TypeReference {
	return TypeReference{repr: renderType(t)}
}

func renderType(t *Type) string {
	if t == nil {
		return ""
	}

	var out string
	switch t.Shape {
	case ShapeClass:
		out = renderClassName(t.Class)
		if len(t.Args) > 0 {
			rendered := make([]string, len(t.Args))
			for i, arg := range t.Args {
				rendered[i] = renderType(arg)
			}
			out += "<" + strings.Join(rendered, ",") + ">"
		}
	case ShapeTypeParameter:
		if t.TypeParam != nil {
			out = "^" + t.TypeParam.Name
		} else {
			out = "^"
		}
	case ShapeDefinitelyNotNull:
		out = renderType(t.Underlying) + "!!"
	case ShapeError, ShapeDynamic:
		out = t.Text
	default:
		// Non-denotable shapes keep their engine-provided rendering,
		// tagged so distinct shapes with equal text stay distinct.
		out = t.Shape.String() + ":" + t.Text
	}

	if t.Nullable {
		out += "?"
	}
	return out
}

func renderClassName(class *Symbol) string {
	if class == nil {
		return ""
	}
	if class.ClassID != nil {
		if class.ClassID.PackageName == "" {
			return class.ClassID.ClassNames
		}
		return class.ClassID.PackageName + "." + class.ClassID.ClassNames
	}
	return class.Name
}
