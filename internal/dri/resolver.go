package dri

import (
	"fmt"

	"github.com/driref-dev/driref/internal/symbol"
)

// maxContainmentDepth bounds the containment-chain walk. Real nesting is a
// handful of levels deep; anything near the bound means a malformed graph.
const maxContainmentDepth = 512

// FromSymbol constructs the identifier for a resolved symbol. It is total
// over every kind the resolution engine produces and fails only when a
// kind-specific precondition is violated: a symbol always maps to the same
// identifier, so callers should treat failure as an upstream bug, not retry.
func FromSymbol(sym *symbol.Symbol) (DRI, error) {
	if sym == nil {
		return DRI{}, fmt.Errorf("%w: nil symbol", ErrMalformedInput)
	}

	switch sym.Kind {
	case symbol.KindEnumEntry:
		return fromEnumEntry(sym)
	case symbol.KindTypeParameter:
		return fromTypeParameter(sym)
	case symbol.KindConstructor:
		return fromConstructor(sym)
	case symbol.KindValueParameter:
		return fromValueParameter(sym)
	case symbol.KindProperty:
		return fromVariableLike(sym)
	case symbol.KindFunction:
		return fromFunctionLike(sym)
	case symbol.KindClass:
		return fromClassLike(sym)
	case symbol.KindPackage:
		return DRI{PackageName: sym.Name}, nil
	case symbol.KindReceiverParameter:
		if sym.Type == nil {
			return DRI{}, fmt.Errorf("%w: receiver parameter has no type", ErrMalformedInput)
		}
		return FromReceiverType(sym.Type)
	default:
		return DRI{}, fmt.Errorf("%w: %s", ErrUnsupportedCategory, sym.Kind)
	}
}

// Enum entries keep the shape of the older identifier scheme: a plain class
// path suffix on the containing enum, with no callable, even though an entry
// structurally behaves like a property. Existing consumers depend on it.
func fromEnumEntry(sym *symbol.Symbol) (DRI, error) {
	if sym.Containing == nil {
		return DRI{}, fmt.Errorf("%w: enum entry %q has no containing enum", ErrMalformedInput, sym.Name)
	}
	owner, err := FromSymbol(sym.Containing)
	if err != nil {
		return DRI{}, err
	}
	if owner.ClassNames == "" {
		return DRI{}, fmt.Errorf("%w: enum entry %q is not enclosed in a class", ErrMalformedInput, sym.Name)
	}
	return DRI{PackageName: owner.PackageName, ClassNames: owner.ClassNames + "." + sym.Name}, nil
}

func fromTypeParameter(sym *symbol.Symbol) (DRI, error) {
	owner := sym.Containing
	if owner == nil {
		return DRI{}, fmt.Errorf("%w: type parameter %q has no containing declaration", ErrMalformedInput, sym.Name)
	}
	if len(owner.TypeParams) == 0 {
		return DRI{}, fmt.Errorf("%w: containing symbol of type parameter %q declares no type parameters", ErrMalformedInput, sym.Name)
	}

	index := -1
	for i, name := range owner.TypeParams {
		if name == sym.Name {
			index = i
			break
		}
	}
	if index < 0 {
		return DRI{}, fmt.Errorf("%w: type parameter %q not declared by its containing symbol", ErrMalformedInput, sym.Name)
	}

	ownerDRI, err := FromSymbol(owner)
	if err != nil {
		return DRI{}, err
	}
	return ownerDRI.WithTarget(GenericParameterIndex(index)), nil
}

func fromConstructor(sym *symbol.Symbol) (DRI, error) {
	class := sym.Containing
	if class == nil {
		return DRI{}, fmt.Errorf("%w: constructor has no owning class", ErrMalformedInput)
	}
	if class.Local || class.ClassID == nil {
		return DRI{}, fmt.Errorf("%w: constructor of locally scoped class %q", ErrUnresolvableLocality, class.Name)
	}

	classDRI, err := FromSymbol(class)
	if err != nil {
		return DRI{}, err
	}
	return classDRI.WithCallable(&Callable{
		Name:   class.ClassID.SimpleName(),
		Params: renderParams(sym.Params),
	}), nil
}

func fromValueParameter(sym *symbol.Symbol) (DRI, error) {
	owner := sym.Containing
	if owner == nil {
		return DRI{}, fmt.Errorf("%w: value parameter %q has no containing callable", ErrMalformedInput, sym.Name)
	}
	switch owner.Kind {
	case symbol.KindFunction, symbol.KindConstructor, symbol.KindProperty:
	default:
		return DRI{}, fmt.Errorf("%w: containing symbol of value parameter %q is a %s, not a callable", ErrMalformedInput, sym.Name, owner.Kind)
	}

	index := -1
	for i, param := range owner.Params {
		if param.Name == sym.Name {
			index = i
			break
		}
	}
	if index < 0 {
		return DRI{}, fmt.Errorf("%w: value parameter %q not declared by its containing callable", ErrMalformedInput, sym.Name)
	}

	ownerDRI, err := FromSymbol(owner)
	if err != nil {
		return DRI{}, err
	}
	return ownerDRI.WithTarget(CallableParameterIndex(index)), nil
}

func fromVariableLike(sym *symbol.Symbol) (DRI, error) {
	if sym.Local {
		return fromLocalDeclaration(sym)
	}
	scope, err := enclosingScope(sym)
	if err != nil {
		return DRI{}, err
	}
	return scope.WithCallable(&Callable{
		Name:     sym.Name,
		Receiver: renderReceiver(sym.Receiver),
	}), nil
}

func fromFunctionLike(sym *symbol.Symbol) (DRI, error) {
	if sym.Local {
		return fromLocalDeclaration(sym)
	}
	scope, err := enclosingScope(sym)
	if err != nil {
		return DRI{}, err
	}
	return scope.WithCallable(&Callable{
		Name:     sym.Name,
		Params:   renderParams(sym.Params),
		Receiver: renderReceiver(sym.Receiver),
	}), nil
}

func fromClassLike(sym *symbol.Symbol) (DRI, error) {
	if sym.ClassID == nil {
		return DRI{}, fmt.Errorf("%w: class %q has no stable identifier", ErrUnresolvableLocality, sym.Name)
	}
	return DRI{PackageName: sym.ClassID.PackageName, ClassNames: sym.ClassID.ClassNames}, nil
}

// fromLocalDeclaration names a declaration that has no stable name of its
// own: walk up the containment chain past every locally scoped symbol, anchor
// on the first stably named one, then lay the local declaration's own
// signature on top of the anchor's package and class path.
func fromLocalDeclaration(sym *symbol.Symbol) (DRI, error) {
	if sym.Name == "" {
		return DRI{}, fmt.Errorf("%w: local declaration has no renderable name", ErrUnresolvableLocality)
	}
	if sym.Containing == nil {
		return DRI{}, fmt.Errorf("%w: local declaration %q has no containing symbol", ErrMalformedInput, sym.Name)
	}

	seen := make(map[*symbol.Symbol]bool)
	anchor := sym.Containing
	for depth := 0; anchor != nil && anchor.Local; depth++ {
		if depth >= maxContainmentDepth || seen[anchor] {
			return DRI{}, fmt.Errorf("%w: containment chain of %q does not terminate", ErrMalformedInput, sym.Name)
		}
		seen[anchor] = true
		anchor = anchor.Containing
	}
	if anchor == nil {
		return DRI{}, fmt.Errorf("%w: no stably named declaration encloses %q", ErrUnresolvableLocality, sym.Name)
	}

	anchorDRI, err := FromSymbol(anchor)
	if err != nil {
		return DRI{}, err
	}
	return DRI{
		PackageName: anchorDRI.PackageName,
		ClassNames:  anchorDRI.ClassNames,
		Callable: &Callable{
			Name:     sym.Name,
			Params:   renderParams(sym.Params),
			Receiver: renderReceiver(sym.Receiver),
		},
	}, nil
}

// FromReceiverType names a type directly, for extension-receiver identifiers
// where no declaration symbol exists. Error and dynamic types degrade to a
// sentinel identifier instead of failing: partially broken input is expected
// there. Non-denotable shapes fail hard — a receiver request for one signals
// a resolution-layer bug.
func FromReceiverType(t *symbol.Type) (DRI, error) {
	if t == nil {
		return DRI{}, fmt.Errorf("%w: nil receiver type", ErrMalformedInput)
	}

	switch t.Shape {
	case symbol.ShapeClass:
		if t.Class == nil {
			return DRI{}, fmt.Errorf("%w: class type without class symbol", ErrMalformedInput)
		}
		return FromSymbol(t.Class)
	case symbol.ShapeTypeParameter:
		if t.TypeParam == nil {
			return DRI{}, fmt.Errorf("%w: type-parameter type without parameter symbol", ErrMalformedInput)
		}
		return FromSymbol(t.TypeParam)
	case symbol.ShapeDefinitelyNotNull:
		return FromReceiverType(t.Underlying)
	case symbol.ShapeError, symbol.ShapeDynamic:
		return DRI{ClassNames: ErrorClassName + " " + t.Text}, nil
	default:
		return DRI{}, fmt.Errorf("%w: non-denotable %s type cannot be named as a receiver", ErrUnsupportedCategory, t.Shape)
	}
}

// ClassIDFrom is the narrow inverse of construction: it rebuilds the class
// identifier from an identifier's package and class path. Callable and target
// are ignored, so the mapping is lossy and class-only.
func ClassIDFrom(d DRI) (symbol.ClassID, error) {
	if d.ClassNames == "" {
		return symbol.ClassID{}, fmt.Errorf("%w: identifier has no class path", ErrMalformedInput)
	}
	return symbol.ClassID{PackageName: d.PackageName, ClassNames: d.ClassNames}, nil
}

// enclosingScope resolves the package and class path a member declaration
// lives in, discarding any callable or target the containing identifier
// carries.
func enclosingScope(sym *symbol.Symbol) (DRI, error) {
	if sym.Containing == nil {
		return DRI{}, fmt.Errorf("%w: %s %q has no containing symbol", ErrMalformedInput, sym.Kind, sym.Name)
	}
	owner, err := FromSymbol(sym.Containing)
	if err != nil {
		return DRI{}, err
	}
	return DRI{PackageName: owner.PackageName, ClassNames: owner.ClassNames}, nil
}

func renderParams(params []symbol.Param) []symbol.TypeReference {
	if len(params) == 0 {
		return nil
	}
	refs := make([]symbol.TypeReference, len(params))
	for i, param := range params {
		refs[i] = symbol.RenderTypeReference(param.Type)
	}
	return refs
}

func renderReceiver(receiver *symbol.Type) *symbol.TypeReference {
	if receiver == nil {
		return nil
	}
	ref := symbol.RenderTypeReference(receiver)
	return &ref
}
