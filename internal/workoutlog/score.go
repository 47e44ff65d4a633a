package workoutlog

import "math"

// ComputeWorkScore normalizes one workout session into a single training
// load number. A precomputed score on the record wins verbatim. Strength
// sessions score volume lifted, cardio sessions score effort-weighted
// minutes, anything else scores zero.
func ComputeWorkScore(record Record) int {
	if record.WorkScore != nil {
		return *record.WorkScore
	}

	switch record.WorkoutType {
	case WorkoutTypeStrength:
		var total float64
		for _, exercise := range record.Exercises {
			total += exercise.Sets * exercise.Reps * exercise.Weight
		}
		return int(math.Round(total / 100))
	case WorkoutTypeCardio:
		var total float64
		for _, exercise := range record.Exercises {
			intensity := 5.0
			if exercise.Intensity != nil {
				intensity = *exercise.Intensity
			}
			total += (exercise.Duration * 2) * (intensity / 5)
		}
		return int(math.Round(total))
	default:
		return 0
	}
}
