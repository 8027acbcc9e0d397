package sourcemapx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gopherjs/emitmap/emitter"
)

func TestIdentifier_String(t *testing.T) {
	ident := Identifier{
		Name:         "a1",
		OriginalName: "$accent",
		Origin:       emitter.Origin{Line: 7, Column: 5, File: "vars.styl"},
	}

	got := ident.String()
	if got != ident.Name {
		t.Errorf("Got: ident.String() = %q. Want: %q.", got, ident.Name)
	}
}

func TestIdentifier_EncodeHint(t *testing.T) {
	original := Identifier{
		Name:         "a1",
		OriginalName: "$accent",
		Origin:       emitter.Origin{Line: 7, Column: 5, File: "vars.styl"},
	}

	encoded := original.EncodeHint()
	hint, _ := ReadHint([]byte(encoded))
	decoded, err := hint.Unpack()
	if err != nil {
		t.Fatalf("Got: hint.Unpack() returned error: %s. Want: no error.", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("Decoded hint differs from the original (-want,+got):\n%s", diff)
	}
}
