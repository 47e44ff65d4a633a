package workoutchat

import "time"

// Phase of one workout logging attempt. The assistant prompt drives the
// conversation through these phases, but the phase stored on the session is
// always recomputed here from the merged summary, never trusted from the
// model output alone.
type Phase string

const (
	PhaseCollectingExercises Phase = "collecting_exercises"
	PhaseAwaitingNotes       Phase = "awaiting_notes"
	PhaseComplete            Phase = "complete"
)

type SummaryExercise struct {
	Name   string  `json:"name"`
	Metric string  `json:"metric"`
	Volume float64 `json:"volume"`
}

// WorkoutSummary is the session state of one logging attempt, echoed to and
// from the assistant each turn. Exercises keep insertion order and duplicates
// by name are legal and distinct.
type WorkoutSummary struct {
	Date       string            `json:"date"`
	Notes      string            `json:"notes"`
	Volume     float64           `json:"volume"`
	Calories   float64           `json:"calories"`
	IsComplete bool              `json:"isComplete"`
	Exercises  []SummaryExercise `json:"exercises"`

	// session bookkeeping, not part of the model contract
	SessionID string `json:"sessionId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Phase     Phase  `json:"phase,omitempty"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// historyLimit bounds the context sent upstream: older turns are dropped,
// not summarized.
const historyLimit = 10

func TrimHistory(history []ChatTurn) []ChatTurn {
	if len(history) <= historyLimit {
		return history
	}
	return history[len(history)-historyLimit:]
}

// MergeSummary applies the assistant's summary on top of the previous session
// state. The model re-emits the whole summary each turn, so the update wins,
// but session bookkeeping and the start date survive from the previous state.
func MergeSummary(previous *WorkoutSummary, update WorkoutSummary, modelPhase Phase) WorkoutSummary {
	merged := update

	if previous != nil {
		if merged.Date == "" {
			merged.Date = previous.Date
		}
		merged.SessionID = previous.SessionID
		merged.UserID = previous.UserID
	}
	if merged.Date == "" {
		merged.Date = time.Now().Format("2006-01-02")
	}

	merged.Phase = DerivePhase(merged, modelPhase)
	return merged
}

// DerivePhase recomputes the attempt phase from the merged summary. The model
// may hint that it is awaiting the final notes question; the hint is only
// accepted when the summary state makes it plausible.
func DerivePhase(summary WorkoutSummary, hint Phase) Phase {
	switch {
	case summary.IsComplete:
		return PhaseComplete
	case hint == PhaseAwaitingNotes && len(summary.Exercises) > 0:
		return PhaseAwaitingNotes
	default:
		return PhaseCollectingExercises
	}
}
