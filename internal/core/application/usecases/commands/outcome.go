package commands

// Outcome distinguishes a mutation that changed state from an idempotent
// retry that found the state already in place. Both are successes; callers
// use the distinction for response envelopes ({ok:true} vs
// {ok:true, already:true}) and to avoid duplicate side effects.
type Outcome int

const (
	// OutcomeUnknown is the zero value, returned alongside errors.
	OutcomeUnknown Outcome = iota

	// OutcomeApplied means the mutation changed persisted state and appended
	// its audit event.
	OutcomeApplied

	// OutcomeAlreadyApplied means the persisted state already matched the
	// caller's intent; nothing was written.
	OutcomeAlreadyApplied
)

// Applied reports whether the mutation changed state.
func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}
