// Package workflow is the Workflow State Machine (C5): the StateGuard
// matrix and the Anti-Greedy rules applied right after intent extraction.
// No single original_source file owns this logic (it is inlined into the
// orchestrator in the Python source) — its extraction into its own package
// is the re-architecture called for by the DESIGN NOTES.
package workflow

import "travelcore/internal/coretypes"

// GuardResult is the outcome of checking one intent against the current
// Context's workflow state and required fields.
type GuardResult struct {
	Allowed bool
	Prompt  string // user-facing prompt to emit when Allowed is false
}

var allowedStates = map[coretypes.PrimaryIntent][]coretypes.WorkflowState{
	coretypes.IntentCalculateCost: {
		coretypes.StateChoosingHotel,
		coretypes.StateReadyToFinalize,
		coretypes.StateFinalized,
	},
	coretypes.IntentFindHotel: {
		coretypes.StateChoosingHotel,
		coretypes.StateChoosingSpots,
		coretypes.StateInitial,
	},
}

// nonTerminalStates are every state but FINALIZED, used by find_food's
// "any non-terminal" guard.
var nonTerminalStates = []coretypes.WorkflowState{
	coretypes.StateInitial,
	coretypes.StateGatheringInfo,
	coretypes.StateChoosingSpots,
	coretypes.StateChoosingHotel,
	coretypes.StateReadyToFinalize,
	coretypes.StateCostEstimation,
}

// CheckGuard applies the StateGuard matrix (§4.5) for intent against c.
// calculate_cost requires Selections.SelectedHotel to be set; no
// auto-selected hotel is accepted in its place.
func CheckGuard(c *coretypes.Context, intent coretypes.PrimaryIntent) GuardResult {
	switch intent {
	case coretypes.IntentCalculateCost:
		if !stateIn(c.Workflow.State, allowedStates[intent]) {
			return GuardResult{Allowed: false, Prompt: "Bạn muốn tính chi phí cho khách sạn nào? Hãy chọn một khách sạn trước nhé."}
		}
		if c.Selections.SelectedHotel == nil {
			return GuardResult{Allowed: false, Prompt: "Bạn chưa chọn khách sạn nào. Hãy chọn một khách sạn trước khi tính chi phí."}
		}
		return GuardResult{Allowed: true}

	case coretypes.IntentFindHotel:
		if !stateIn(c.Workflow.State, allowedStates[intent]) {
			return GuardResult{Allowed: false, Prompt: "Bạn muốn tìm khách sạn ở đâu?"}
		}
		if c.Slots.Destination == "" {
			return GuardResult{Allowed: false, Prompt: "Bạn muốn tìm khách sạn ở đâu?"}
		}
		return GuardResult{Allowed: true}

	case coretypes.IntentFindFood:
		if !stateIn(c.Workflow.State, nonTerminalStates) {
			return GuardResult{Allowed: false, Prompt: "Bạn muốn tìm quán ăn ở đâu?"}
		}
		if c.Slots.Destination == "" {
			return GuardResult{Allowed: false, Prompt: "Bạn muốn tìm quán ăn ở đâu?"}
		}
		return GuardResult{Allowed: true}

	default:
		return GuardResult{Allowed: true}
	}
}

func stateIn(state coretypes.WorkflowState, states []coretypes.WorkflowState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}
