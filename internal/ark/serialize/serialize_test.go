package serialize

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/ursalang/ark/internal/ark/builtins"
	"github.com/ursalang/ark/internal/ark/compiler"
)

// TestMain lets go-snaps prune obsolete snapshots after the package's tests
// finish, matching the teacher's fixture_test.go convention.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

// TestRoundTripSnapshots compiles a handful of programs, serializes the
// resulting expression graph back to wire JSON, and snapshots the output —
// catching accidental tag/shape drift in the serializer across changes.
func TestRoundTripSnapshots(t *testing.T) {
	globals := builtins.Globals()
	names := builtins.Names(globals)

	progs := map[string]string{
		"arithmetic": `["+",["*",2,3],4]`,
		"closure": `["let",["params","counter"],
			["seq",
				["set",["ref","counter"],0],
				["fn",["params"],
					["seq",
						["set",["ref","counter"],["+","counter",1]],
						"counter"
					]
				]
			]
		]`,
		"control-flow": `["loop",["if",["<",1,2],["break",["str","done"]],["continue"]]]`,
	}

	for name, prog := range progs {
		t.Run(name, func(t *testing.T) {
			compiled, err := compiler.Compile([]byte(prog), names, builtins.Intrinsics())
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			out, err := MarshalIndent(compiled.Expression)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			snaps.MatchSnapshot(t, out)
		})
	}
}
