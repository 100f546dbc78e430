package bpgadgets

import "github.com/rs/zerolog"

// State is a step of the prove or verify state machine.
type State int

const (
	StateInit State = iota
	StateBuildConstraints
	StateCommit
	StateDeriveChallenges
	StateRunFoldingRounds
	StateSerialize
	StateDone
	StateFailed

	StateDeserialize
	StateRebuildPublicConstraints
	StateCheckClosingEquation
	StateAccept
	StateReject
)

var stateNames = [...]string{
	StateInit:                     "Init",
	StateBuildConstraints:         "BuildConstraints",
	StateCommit:                   "Commit",
	StateDeriveChallenges:         "DeriveChallenges",
	StateRunFoldingRounds:         "RunFoldingRounds",
	StateSerialize:                "Serialize",
	StateDone:                     "Done",
	StateFailed:                   "Failed",
	StateDeserialize:              "Deserialize",
	StateRebuildPublicConstraints: "RebuildPublicConstraints",
	StateCheckClosingEquation:     "CheckClosingEquation",
	StateAccept:                   "Accept",
	StateReject:                   "Reject",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// machine logs the linear progress of one call. A failure jumps straight to the
// terminal state.
type machine struct {
	log   zerolog.Logger
	state State
	trace []State
}

func newMachine(log zerolog.Logger) *machine {
	m := &machine{log: log, state: StateInit}
	m.trace = append(m.trace, StateInit)
	log.Debug().Stringer("state", StateInit).Msg("state")
	return m
}

func (m *machine) enter(s State) {
	m.state = s
	m.trace = append(m.trace, s)
	m.log.Debug().Stringer("state", s).Msg("state")
}

func (m *machine) finish(err error, ok, failed State) {
	if err == nil {
		m.enter(ok)
	} else {
		m.enter(failed)
	}
}
