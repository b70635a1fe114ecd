package symbol

// Kind classifies a resolved symbol at the boundary with the resolution
// engine. The set is closed: anything the engine produces outside of it maps
// to KindUnknown and is rejected by the identifier classifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindPackage
	KindClass
	KindFunction
	KindProperty
	KindConstructor
	KindTypeParameter
	KindValueParameter
	KindReceiverParameter
	KindEnumEntry
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	case KindConstructor:
		return "constructor"
	case KindTypeParameter:
		return "type-parameter"
	case KindValueParameter:
		return "value-parameter"
	case KindReceiverParameter:
		return "receiver-parameter"
	case KindEnumEntry:
		return "enum-entry"
	default:
		return "unknown"
	}
}

// ClassID is the resolution engine's stable identifier for a non-local
// class-like declaration: a dotted package path plus the dotted chain of
// enclosing class names, outermost first.
type ClassID struct {
	PackageName string
	ClassNames  string
}

// SimpleName returns the innermost class name.
func (c ClassID) SimpleName() string {
	names := c.ClassNames
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == '.' {
			return names[i+1:]
		}
	}
	return names
}

// Param is a declared value parameter of a callable symbol.
type Param struct {
	Name string
	Type *Type
}

// Symbol is the read-only view of a resolved declaration exposed by the
// resolution engine. Fields are populated per kind; absent aspects stay at
// their zero value:
//
//   - Containing: the enclosing symbol, nil only for packages.
//   - ClassID: set for class-like symbols with a stable identifier; nil for
//     locally scoped classes.
//   - TypeParams: declared type parameter names, in declaration order.
//   - Params: declared value parameters, in declaration order.
//   - Receiver: the extension receiver type of a function or property, if any.
//   - Type: for receiver-parameter symbols only, the receiver's resolved type.
//   - Local: true when the declaration has no globally stable name.
type Symbol struct {
	Kind       Kind
	Name       string
	Containing *Symbol
	ClassID    *ClassID
	TypeParams []string
	Params     []Param
	Receiver   *Type
	Type       *Type
	Local      bool
}
