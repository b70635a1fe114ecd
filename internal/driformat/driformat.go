// Package driformat owns the textual form of a declaration reference
// identifier. The core treats identifiers as plain in-memory values; this is
// the collaborator that flattens them for display and reads them back.
//
// The layout is five slash-separated segments:
//
//	packageName/classNames/callableName/signature/target
//
// where signature is the receiver reference and the parameter references
// joined with '#' (leading segment is the receiver, empty when there is
// none), and target is empty, "generic:i" or "param:i". Segments that do not
// apply stay empty, so every identifier renders to exactly four slashes.
package driformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/driref-dev/driref/internal/dri"
	"github.com/driref-dev/driref/internal/symbol"
)

// ErrInvalid reports that a literal does not parse back to an identifier.
var ErrInvalid = errors.New("invalid identifier literal")

// Format flattens an identifier to its textual form.
func Format(d dri.DRI) string {
	name := ""
	signature := ""
	if d.Callable != nil {
		name = d.Callable.Name
		parts := make([]string, 0, len(d.Callable.Params)+1)
		receiver := ""
		if d.Callable.Receiver != nil {
			receiver = d.Callable.Receiver.String()
		}
		parts = append(parts, receiver)
		for _, param := range d.Callable.Params {
			parts = append(parts, param.String())
		}
		signature = strings.Join(parts, "#")
	}

	target := ""
	switch d.Target.Kind {
	case dri.TargetGenericParameter:
		target = fmt.Sprintf("generic:%d", d.Target.Index)
	case dri.TargetCallableParameter:
		target = fmt.Sprintf("param:%d", d.Target.Index)
	}

	return strings.Join([]string{d.PackageName, d.ClassNames, name, signature, target}, "/")
}

// Parse is the strict inverse of Format.
func Parse(literal string) (dri.DRI, error) {
	segments := strings.Split(literal, "/")
	if len(segments) != 5 {
		return dri.DRI{}, fmt.Errorf("%w: want 5 segments, got %d in %q", ErrInvalid, len(segments), literal)
	}

	d := dri.DRI{PackageName: segments[0], ClassNames: segments[1]}

	name, signature := segments[2], segments[3]
	if name == "" && signature != "" {
		return dri.DRI{}, fmt.Errorf("%w: signature without callable name in %q", ErrInvalid, literal)
	}
	if name != "" {
		callable := &dri.Callable{Name: name}
		if signature != "" {
			parts := strings.Split(signature, "#")
			if parts[0] != "" {
				receiver := symbol.NewTypeReference(parts[0])
				callable.Receiver = &receiver
			}
			for _, part := range parts[1:] {
				callable.Params = append(callable.Params, symbol.NewTypeReference(part))
			}
		}
		d.Callable = callable
	}

	target, err := parseTarget(segments[4], literal)
	if err != nil {
		return dri.DRI{}, err
	}
	d.Target = target

	return d, nil
}

func parseTarget(segment, literal string) (dri.PointerTarget, error) {
	if segment == "" {
		return dri.PointerTarget{}, nil
	}

	kind, index, ok := strings.Cut(segment, ":")
	if !ok {
		return dri.PointerTarget{}, fmt.Errorf("%w: bad target %q in %q", ErrInvalid, segment, literal)
	}
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 {
		return dri.PointerTarget{}, fmt.Errorf("%w: bad target index %q in %q", ErrInvalid, index, literal)
	}

	switch kind {
	case "generic":
		return dri.GenericParameterIndex(i), nil
	case "param":
		return dri.CallableParameterIndex(i), nil
	default:
		return dri.PointerTarget{}, fmt.Errorf("%w: unknown target kind %q in %q", ErrInvalid, kind, literal)
	}
}
