package value

import "fmt"

// requireIndex extracts a Num argument at position idx and returns it as an
// int. Native methods on List/Map use this for their index arguments.
func requireIndex(args []Value, idx int, who string) (int, error) {
	if idx >= len(args) {
		return 0, errArgCount(who, idx+1, len(args))
	}
	n, ok := args[idx].(*NumValue)
	if !ok {
		return 0, fmt.Errorf("%s: expected a Num index, got %s", who, args[idx].Kind())
	}
	return int(n.Value), nil
}

func errArgCount(who string, want, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", who, want, got)
}
