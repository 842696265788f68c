package payment

type Phase string

const (
	PhaseCreated            Phase = "CREATED"
	PhaseAwaitingUserAction Phase = "AWAITING_USER_ACTION"
	PhaseVerifying          Phase = "VERIFYING"
	PhaseVerified           Phase = "VERIFIED"
	PhaseFailed             Phase = "FAILED"
)

// Verifying -> AwaitingUserAction re-opens the payment surface after a failed
// verification. Nothing returns to Created and terminal phases have no exits.
var allowedTransitions = map[Phase][]Phase{
	PhaseCreated:            {PhaseAwaitingUserAction, PhaseFailed},
	PhaseAwaitingUserAction: {PhaseVerifying, PhaseFailed},
	PhaseVerifying:          {PhaseVerified, PhaseAwaitingUserAction, PhaseFailed},
}

func (p Phase) String() string {
	return string(p)
}

func (p Phase) IsTerminal() bool {
	return p == PhaseVerified || p == PhaseFailed
}

func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range allowedTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
