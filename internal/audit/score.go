package audit

import "math"

// Score aggregates scored checks into a 0-100 composite. Every check is
// worth an equal share of 100 points; an empty check set scores 0.
func Score(checks []ScoredCheck) int {
	if len(checks) == 0 {
		return 0
	}
	share := 100.0 / float64(len(checks))
	total := 0.0
	for _, c := range checks {
		if c.Check.Passed {
			total += share
		}
	}
	return int(math.Round(total))
}

// GradeFor maps a composite score to a letter grade. Thresholds are
// inclusive lower bounds.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}
