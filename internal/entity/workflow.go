package entity

import (
	"fmt"
	"time"
)

// Workflow actions a caller may apply to a lead.
const (
	ActionContact = "CONTACT"
	ActionQualify = "QUALIFY"
	ActionConvert = "CONVERT"
	ActionLose    = "LOSE"
)

// SideEffect is executed by the workflow engine inside the same transaction
// as the status write. CreateFollowUpTask schedules a task due after
// FollowUpOffset.
type SideEffect int

const (
	SideEffectNone SideEffect = iota
	SideEffectCreateFollowUpTask
)

// FollowUpOffset is the default due offset for auto-created follow-up tasks.
const FollowUpOffset = 72 * time.Hour

type Transition struct {
	From       string
	Action     string
	To         string
	SideEffect SideEffect
}

// Workflow is the authoritative transition table: (status, action) -> target.
// Pairs missing from the table are invalid, including no-op self transitions
// and anything out of a terminal status.
type Workflow struct {
	transitions map[string]map[string]Transition
}

func transitionKey(t Transition) string {
	return t.From + "/" + t.Action
}

// DefaultWorkflow is the pipeline shipped with the product:
//
//	NEW -CONTACT-> CONTACTED -QUALIFY-> QUALIFIED -CONVERT-> CONVERTED
//
// with LOSE reaching LOST from any non-terminal status. Entering QUALIFIED
// auto-creates a follow-up task.
func DefaultWorkflow() *Workflow {
	w, err := NewWorkflow([]Transition{
		{From: StatusNew, Action: ActionContact, To: StatusContacted},
		{From: StatusContacted, Action: ActionQualify, To: StatusQualified, SideEffect: SideEffectCreateFollowUpTask},
		{From: StatusQualified, Action: ActionConvert, To: StatusConverted},
		{From: StatusNew, Action: ActionLose, To: StatusLost},
		{From: StatusContacted, Action: ActionLose, To: StatusLost},
		{From: StatusQualified, Action: ActionLose, To: StatusLost},
	})
	if err != nil {
		panic(fmt.Sprintf("default workflow is invalid: %v", err))
	}
	return w
}

// NewWorkflow builds a workflow from a transition list and validates it:
// statuses must be known, transitions must be strictly informative
// (from != to), terminal statuses must have no outgoing edges, the table must
// be deterministic (no duplicate (from, action) pairs), and every status
// reachable from NEW must be able to reach a terminal status.
func NewWorkflow(transitions []Transition) (*Workflow, error) {
	known := map[string]bool{
		StatusNew:       true,
		StatusContacted: true,
		StatusQualified: true,
		StatusConverted: true,
		StatusLost:      true,
	}

	byFrom := make(map[string]map[string]Transition)
	for _, t := range transitions {
		if !known[t.From] || !known[t.To] {
			return nil, fmt.Errorf("transition %s references an unknown status", transitionKey(t))
		}
		if t.From == t.To {
			return nil, fmt.Errorf("transition %s is a no-op", transitionKey(t))
		}
		if IsTerminalStatus(t.From) {
			return nil, fmt.Errorf("transition %s leaves a terminal status", transitionKey(t))
		}
		if _, dup := byFrom[t.From][t.Action]; dup {
			return nil, fmt.Errorf("duplicate transition %s", transitionKey(t))
		}
		if byFrom[t.From] == nil {
			byFrom[t.From] = make(map[string]Transition)
		}
		byFrom[t.From][t.Action] = t
	}

	w := &Workflow{transitions: byFrom}
	if err := w.checkReachability(); err != nil {
		return nil, err
	}
	return w, nil
}

// checkReachability verifies every status reachable from NEW has a path to a
// terminal one. Cycles between non-terminal statuses are legal, so
// terminal-reachability is computed to a fixpoint instead of in a single walk.
func (w *Workflow) checkReachability() error {
	visited := map[string]bool{StatusNew: true}
	frontier := []string{StatusNew}
	for len(frontier) > 0 {
		status := frontier[0]
		frontier = frontier[1:]
		for _, t := range w.transitions[status] {
			if !visited[t.To] {
				visited[t.To] = true
				frontier = append(frontier, t.To)
			}
		}
	}

	reachesTerminal := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for status := range visited {
			if reachesTerminal[status] {
				continue
			}
			for _, t := range w.transitions[status] {
				if IsTerminalStatus(t.To) || reachesTerminal[t.To] {
					reachesTerminal[status] = true
					changed = true
					break
				}
			}
		}
	}

	for status := range visited {
		if !IsTerminalStatus(status) && !reachesTerminal[status] {
			return fmt.Errorf("status %s cannot reach a terminal status", status)
		}
	}
	return nil
}

// Next resolves (current, action). The bool reports whether the pair is a
// legal transition.
func (w *Workflow) Next(current, action string) (Transition, bool) {
	t, ok := w.transitions[current][action]
	return t, ok
}

// Actions lists the legal actions out of a status, for API discoverability.
func (w *Workflow) Actions(current string) []string {
	actions := make([]string, 0, len(w.transitions[current]))
	for action := range w.transitions[current] {
		actions = append(actions, action)
	}
	return actions
}
