package dri

import (
	"testing"

	"github.com/driref-dev/driref/internal/symbol"
)

func TestWithTargetDerivesWithoutMutating(t *testing.T) {
	base := DRI{
		PackageName: "pkg",
		ClassNames:  "Widget",
		Callable:    &Callable{Name: "resize"},
	}

	derived := base.WithTarget(CallableParameterIndex(1))

	if base.Target.Kind != TargetNone {
		t.Fatalf("expected base identifier to stay untargeted, got %v", base.Target)
	}
	if derived.Target != (PointerTarget{Kind: TargetCallableParameter, Index: 1}) {
		t.Fatalf("unexpected derived target: %v", derived.Target)
	}
	if derived.PackageName != base.PackageName || derived.ClassNames != base.ClassNames {
		t.Fatalf("expected derived identifier to keep package and class path")
	}
	if !derived.Callable.Equal(base.Callable) {
		t.Fatalf("expected derived identifier to keep the owner callable")
	}
}

func TestWithCallableDerivesWithoutMutating(t *testing.T) {
	base := DRI{PackageName: "pkg", ClassNames: "Widget"}

	derived := base.WithCallable(&Callable{Name: "resize"})

	if base.Callable != nil {
		t.Fatalf("expected base identifier to stay callable-free")
	}
	if derived.Callable == nil || derived.Callable.Name != "resize" {
		t.Fatalf("unexpected derived callable: %+v", derived.Callable)
	}
}

func TestCallableEquality(t *testing.T) {
	intRef := symbol.NewTypeReference("Int")
	stringRef := symbol.NewTypeReference("String")
	receiver := symbol.NewTypeReference("Widget")

	base := &Callable{Name: "resize", Params: []symbol.TypeReference{intRef}}

	cases := []struct {
		name  string
		other *Callable
		equal bool
	}{
		{"same signature", &Callable{Name: "resize", Params: []symbol.TypeReference{intRef}}, true},
		{"different name", &Callable{Name: "grow", Params: []symbol.TypeReference{intRef}}, false},
		{"different param type", &Callable{Name: "resize", Params: []symbol.TypeReference{stringRef}}, false},
		{"extra param", &Callable{Name: "resize", Params: []symbol.TypeReference{intRef, intRef}}, false},
		{"added receiver", &Callable{Name: "resize", Params: []symbol.TypeReference{intRef}, Receiver: &receiver}, false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		if got := base.Equal(tc.other); got != tc.equal {
			t.Fatalf("%s: Equal = %v, want %v", tc.name, got, tc.equal)
		}
	}

	var nilCallable *Callable
	if !nilCallable.Equal(nil) {
		t.Fatalf("expected two absent callables to compare equal")
	}
}

func TestDRIEquality(t *testing.T) {
	a := DRI{PackageName: "pkg", ClassNames: "Widget", Callable: &Callable{Name: "resize"}}
	b := DRI{PackageName: "pkg", ClassNames: "Widget", Callable: &Callable{Name: "resize"}}

	if !a.Equal(b) {
		t.Fatalf("expected structurally identical identifiers to compare equal")
	}
	if a.Equal(b.WithTarget(GenericParameterIndex(0))) {
		t.Fatalf("expected differing targets to break equality")
	}
}
