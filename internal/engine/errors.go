package engine

import "fmt"

// BreakdownError rejects a whole breakdown batch. The engine never partially
// applies collaborator input: a quest's category list is replaced atomically
// or not at all.
type BreakdownError struct {
	Group  int
	Task   int
	Reason string
}

func (e BreakdownError) Error() string {
	if e.Task >= 0 {
		return fmt.Sprintf("breakdown group %d task %d: %s", e.Group, e.Task, e.Reason)
	}
	return fmt.Sprintf("breakdown group %d: %s", e.Group, e.Reason)
}
