package catalog

// HeatLevel buckets a day's total seconds for the calendar heatmap.
// 0 means no study time, 6 is the hottest level.
func HeatLevel(seconds int64) int {
	switch {
	case seconds <= 0:
		return 0
	case seconds < 1800:
		return 1
	case seconds < 3600:
		return 2
	case seconds < 7200:
		return 3
	case seconds < 14400:
		return 4
	case seconds < 21600:
		return 5
	}
	return 6
}

// SubjectIntensity scales a subject block's opacity by how long it was studied.
func SubjectIntensity(seconds int64) float64 {
	switch {
	case seconds >= 7200:
		return 1.0
	case seconds >= 3600:
		return 0.75
	case seconds >= 1800:
		return 0.5
	}
	return 0.3
}
