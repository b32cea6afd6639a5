package party

import "github.com/MKhiriev/go-party-swipe/models"

// Phase is the derived lifecycle state of a party session. It is computed
// from the latest snapshot and local flags on every tick; it is never stored.
type Phase int

const (
	// PhaseLoading blocks on a spinner until a usable snapshot arrives.
	PhaseLoading Phase = iota

	// PhaseWaiting shows the invite code until enough members join.
	PhaseWaiting

	// PhaseActive is the swiping state.
	PhaseActive

	// PhaseMatched presents the restaurant every member approved.
	PhaseMatched

	// PhaseExhausted offers start-over once no swipeable cards remain.
	PhaseExhausted

	// PhaseConfirmQuit is the blocking exit-confirmation dialog.
	PhaseConfirmQuit

	// PhaseError presents a terminal party-level fault.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseWaiting:
		return "waiting"
	case PhaseActive:
		return "active"
	case PhaseMatched:
		return "matched"
	case PhaseExhausted:
		return "exhausted"
	case PhaseConfirmQuit:
		return "confirm-quit"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// derivePhase computes the session phase with a fixed precedence:
// error > quit confirmation > matched > exhausted > waiting > loading >
// active. The error check runs first on every tick regardless of what was
// shown before; it is not a one-time transition guard.
func derivePhase(p models.Party, q *Queue, finished, confirmQuit bool) Phase {
	switch {
	case p.Error != "":
		return PhaseError
	case confirmQuit:
		return PhaseConfirmQuit
	case p.Status == models.StatusMatched:
		return PhaseMatched
	case finished || (q.Seeded() && p.Total == 0 && q.Remaining() == 0):
		return PhaseExhausted
	case p.Status == models.StatusWaiting:
		return PhaseWaiting
	case p.IsZero() || !q.Seeded():
		return PhaseLoading
	default:
		return PhaseActive
	}
}
