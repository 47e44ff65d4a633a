package achievements

// Tier is one named rank in a ladder, unlocked when the tracked metric
// reaches Threshold. VisualWeight is a secondary monotonic value used to
// derive a continuous overall completion figure for the profile UI.
type Tier struct {
	Name         string  `json:"name"`
	Threshold    float64 `json:"threshold"`
	VisualWeight float64 `json:"visualWeight"`
}

// Ladder is an ordered list of tiers (low to high, strictly increasing
// thresholds) for one tracked metric.
type Ladder struct {
	ID        string `json:"id"`
	MetricKey string `json:"metricKey"`
	Unit      string `json:"unit"`
	Tiers     []Tier `json:"tiers"`
}

type Progress struct {
	CurrentLevel       *string  `json:"currentLevel"`
	NextLevel          *string  `json:"nextLevel"`
	NextTierValue      *float64 `json:"nextTierValue"`
	ProgressPercentage float64  `json:"progressPercentage"`
}

// ProgressFor maps the current metric value to the highest tier whose
// threshold it meets or exceeds, plus the interpolated progress towards the
// next tier. The percentage is clamped to [0, 100] to guard against division
// artifacts at tier boundaries.
func (l Ladder) ProgressFor(value float64) Progress {
	if len(l.Tiers) == 0 {
		return Progress{}
	}

	idx := l.currentTierIndex(value)

	if idx == -1 {
		lowest := l.Tiers[0]
		return Progress{
			CurrentLevel:       nil,
			NextLevel:          &l.Tiers[0].Name,
			NextTierValue:      &l.Tiers[0].Threshold,
			ProgressPercentage: clampPercentage(value / lowest.Threshold * 100),
		}
	}

	if idx == len(l.Tiers)-1 {
		return Progress{
			CurrentLevel:       &l.Tiers[idx].Name,
			NextLevel:          nil,
			NextTierValue:      nil,
			ProgressPercentage: 100,
		}
	}

	current := l.Tiers[idx]
	next := l.Tiers[idx+1]
	pct := (value - current.Threshold) / (next.Threshold - current.Threshold) * 100

	return Progress{
		CurrentLevel:       &l.Tiers[idx].Name,
		NextLevel:          &l.Tiers[idx+1].Name,
		NextTierValue:      &l.Tiers[idx+1].Threshold,
		ProgressPercentage: clampPercentage(pct),
	}
}

// OverallCompletion blends the per-tier visual weights with the intra-tier
// progress into one continuous 0-100 figure. The top tier weight is expected
// to be 100.
func (l Ladder) OverallCompletion(value float64) float64 {
	if len(l.Tiers) == 0 {
		return 0
	}

	idx := l.currentTierIndex(value)

	if idx == -1 {
		lowest := l.Tiers[0]
		fraction := clampPercentage(value/lowest.Threshold*100) / 100
		return clampPercentage(lowest.VisualWeight * fraction)
	}

	if idx == len(l.Tiers)-1 {
		return clampPercentage(l.Tiers[idx].VisualWeight)
	}

	current := l.Tiers[idx]
	next := l.Tiers[idx+1]
	fraction := clampPercentage((value-current.Threshold)/(next.Threshold-current.Threshold)*100) / 100

	return clampPercentage(current.VisualWeight + (next.VisualWeight-current.VisualWeight)*fraction)
}

func (l Ladder) currentTierIndex(value float64) int {
	idx := -1
	for i := range l.Tiers {
		if value >= l.Tiers[i].Threshold {
			idx = i
		}
	}
	return idx
}

func clampPercentage(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
