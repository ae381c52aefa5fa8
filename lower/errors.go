package lower

import "fmt"

// CompileError reports a failure during lowering: a hard precondition
// violation (e.g. a comparator requiring a block position that has none)
// or an internal bug (an unbound local-input slot), per spec §4.5.
type CompileError struct {
	Node    string
	Slot    string
	Message string
}

func (e *CompileError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("lower: %s (node %s, slot %s)", e.Message, e.Node, e.Slot)
	}
	return fmt.Sprintf("lower: %s (node %s)", e.Message, e.Node)
}
