package achievements

import "fmt"

// Static ladder definitions. These are configuration data, not user-editable
// at runtime.

// Badges is the workout count ladder shown on the client profile.
var Badges = Ladder{
	ID:        "badges",
	MetricKey: "workoutsCompleted",
	Unit:      "workouts",
	Tiers: []Tier{
		{Name: "bronze", Threshold: 10, VisualWeight: 15},
		{Name: "silver", Threshold: 25, VisualWeight: 35},
		{Name: "gold", Threshold: 50, VisualWeight: 60},
		{Name: "platinum", Threshold: 100, VisualWeight: 85},
		{Name: "diamond", Threshold: 250, VisualWeight: 100},
	},
}

// Statues is the total training volume ladder: each tier corresponds to a
// carving stage of the client's statue on the profile screen.
var Statues = Ladder{
	ID:        "statues",
	MetricKey: "totalVolume",
	Unit:      "kg",
	Tiers: []Tier{
		{Name: "block", Threshold: 1000, VisualWeight: 10},
		{Name: "rough cut", Threshold: 5000, VisualWeight: 30},
		{Name: "figure", Threshold: 20000, VisualWeight: 55},
		{Name: "detail", Threshold: 50000, VisualWeight: 80},
		{Name: "masterpiece", Threshold: 150000, VisualWeight: 100},
	},
}

var ladders = map[string]Ladder{
	Badges.ID:  Badges,
	Statues.ID: Statues,
}

func LadderByID(id string) (Ladder, error) {
	ladder, ok := ladders[id]
	if !ok {
		return Ladder{}, fmt.Errorf("unknown ladder: %s", id)
	}
	return ladder, nil
}
