package ark

import (
	"testing"

	"github.com/kr/pretty"
)

// TestRunScenarios exercises the worked examples spec.md §8.2 describes:
// arithmetic, let/set/get, function application, loop/break, and
// list/property access. The recursive-closure example has its own test,
// TestFactorialViaRecursiveClosure.
func TestRunScenarios(t *testing.T) {
	cases := []struct {
		name string
		prog string
		want string
	}{
		{"addition", `["+",3,4]`, "7"},
		{
			"let-set-get",
			`["let",["params","x"],["seq",
				["set",["ref","x"],1],
				["set",["ref","x"],["+","x",2]],
				"x"
			]]`,
			"3",
		},
		{
			"fn-application",
			`[["fn",["params","a","b"],["+","a","b"]],40,2]`,
			"42",
		},
		{"loop-break", `["loop",["break",5]]`, "5"},
		{
			"list-get",
			`[["get",["prop","get",["list",1,2,3]]],1]`,
			"2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Run([]byte(tc.prog))
			if err != nil {
				t.Fatalf("Run(%s) error: %v", tc.name, err)
			}
			if got := result.String(); got != tc.want {
				t.Errorf("Run(%s) = %q, want %q\n%# v", tc.name, got, tc.want, pretty.Formatter(result))
			}
		})
	}
}

// TestFactorialViaRecursiveClosure builds a self-referencing closure by
// `set`ting a `let`-bound cell to a Fn that captures that same cell,
// exercising the capture-chain resolution in internal/ark/compiler and
// the ValueRef-sharing in internal/ark/eval (spec.md §5, §6).
func TestFactorialViaRecursiveClosure(t *testing.T) {
	prog := `
	["let",["params","fact"],
		["seq",
			["set",["ref","fact"],
				["fn",["params","n"],
					["if",["<=","n",1],
						1,
						["*","n",["fact",["-","n",1]]]
					]
				]
			],
			["fact",5]
		]
	]`
	result, err := Run([]byte(prog))
	if err != nil {
		t.Fatalf("Run(factorial) error: %v", err)
	}
	if got := result.String(); got != "120" {
		t.Errorf("Run(factorial) = %q, want %q", got, "120")
	}
}

// TestUninitializedSymbolError asserts reading a `let`-bound name before
// any `set` fails with UninitializedSymbol, not a zero value (spec.md §6).
func TestUninitializedSymbolError(t *testing.T) {
	_, err := Run([]byte(`["let",["params","x"],["get","x"]]`))
	if err == nil {
		t.Fatal("expected an UninitializedSymbol error, got nil")
	}
}

// TestEscapedBreakIsError asserts a break with no enclosing Loop is a
// runtime error rather than silently discarded (spec.md §6).
func TestEscapedBreakIsError(t *testing.T) {
	_, err := Run([]byte(`["break",1]`))
	if err == nil {
		t.Fatal("expected an escaped-break runtime error, got nil")
	}
}
