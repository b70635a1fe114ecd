package dri

import "github.com/driref-dev/driref/internal/symbol"

// ErrorClassName marks the class path of a sentinel identifier built for an
// error or dynamic type. Such identifiers carry an empty package name and the
// type's textual rendering after the marker.
const ErrorClassName = "<ERROR CLASS>"

// TargetKind discriminates what part of a declaration an identifier points
// to. The zero value means the identifier names the declaration itself.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetGenericParameter
	TargetCallableParameter
)

// PointerTarget narrows an identifier to a sub-element of its declaration: a
// type parameter or a value parameter, addressed by declaration-order index.
type PointerTarget struct {
	Kind  TargetKind
	Index int
}

// GenericParameterIndex points at the i-th declared type parameter.
func GenericParameterIndex(i int) PointerTarget {
	return PointerTarget{Kind: TargetGenericParameter, Index: i}
}

// CallableParameterIndex points at the i-th declared value parameter.
func CallableParameterIndex(i int) PointerTarget {
	return PointerTarget{Kind: TargetCallableParameter, Index: i}
}

// Callable is the signature-bearing component of an identifier. Name,
// ordered parameter references, and the optional receiver reference together
// form the overload-disambiguation key.
type Callable struct {
	Name     string
	Params   []symbol.TypeReference
	Receiver *symbol.TypeReference
}

// Equal reports whether two callables name the same signature.
func (c *Callable) Equal(other *Callable) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Name != other.Name || len(c.Params) != len(other.Params) {
		return false
	}
	for i := range c.Params {
		if c.Params[i] != other.Params[i] {
			return false
		}
	}
	if c.Receiver == nil || other.Receiver == nil {
		return c.Receiver == other.Receiver
	}
	return *c.Receiver == *other.Receiver
}

// DRI is a Declaration Reference Identifier: a stable, position-independent
// name for a declaration (or a sub-element of one) that survives separate
// compilation. Values are immutable; derivation goes through the With*
// copy methods.
//
// Empty PackageName and ClassNames stand for "absent". ClassNames is the
// dotted chain of enclosing class names, outermost first.
type DRI struct {
	PackageName string
	ClassNames  string
	Callable    *Callable
	Target      PointerTarget
}

// WithCallable returns a copy with the callable replaced.
func (d DRI) WithCallable(c *Callable) DRI {
	d.Callable = c
	return d
}

// WithTarget returns a copy pointing at a sub-element of the declaration.
func (d DRI) WithTarget(t PointerTarget) DRI {
	d.Target = t
	return d
}

// Equal reports field-wise equality.
func (d DRI) Equal(other DRI) bool {
	return d.PackageName == other.PackageName &&
		d.ClassNames == other.ClassNames &&
		d.Target == other.Target &&
		d.Callable.Equal(other.Callable)
}
