package workoutlog

import "time"

type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCardio   WorkoutType = "cardio"
)

const (
	// SourceAILogger tags records persisted by the workout chat flow.
	SourceAILogger = "ai_logger"
	// SourceManual tags records created through the plain HTTP API.
	SourceManual = "manual"

	SchemaVersion = 1
)

type Exercise struct {
	Name      string   `json:"name"`
	Metric    string   `json:"metric,omitempty"`
	Volume    float64  `json:"volume,omitempty"`
	Sets      float64  `json:"sets,omitempty"`
	Reps      float64  `json:"reps,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Duration  float64  `json:"duration,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// Record is one persisted workout session. Immutable once created, the only
// write path after insert is the per-user aggregate.
type Record struct {
	ID          int         `json:"id"`
	UserID      string      `json:"userId,omitempty"`
	ClientRef   string      `json:"clientRef,omitempty"`
	WorkoutType WorkoutType `json:"workoutType,omitempty"`
	Calories    float64     `json:"calories"`
	TotalVolume float64     `json:"totalVolume"`
	Notes       string      `json:"notes"`
	Exercises   []Exercise  `json:"exercises"`
	WorkScore   *int        `json:"workScore,omitempty"`
	Source      string      `json:"source"`
	Version     int         `json:"version"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Aggregate is the per-user running work score total. Mutated only through
// atomic increments, never read-modify-write.
type Aggregate struct {
	UserID            string    `json:"userId"`
	TotalWorkScore    int       `json:"totalWorkScore"`
	StrengthWorkScore int       `json:"strengthWorkScore"`
	CardioWorkScore   int       `json:"cardioWorkScore"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}
