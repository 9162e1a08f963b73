package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checksWith(passed, failed int) []ScoredCheck {
	var checks []ScoredCheck
	for i := 0; i < passed; i++ {
		checks = append(checks, ScoredCheck{Category: "content", Name: "pass", Check: Check{Passed: true}})
	}
	for i := 0; i < failed; i++ {
		checks = append(checks, ScoredCheck{Category: "content", Name: "fail", Check: Check{Passed: false}})
	}
	return checks
}

func TestScore_AllPass(t *testing.T) {
	t.Parallel()

	score := Score(checksWith(7, 0))
	require.Equal(t, 100, score)
	require.Equal(t, "A+", GradeFor(score))
}

func TestScore_AllFail(t *testing.T) {
	t.Parallel()

	score := Score(checksWith(0, 7))
	require.Equal(t, 0, score)
	require.Equal(t, "F", GradeFor(score))
}

func TestScore_EmptyCheckSet(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Score(nil))
}

func TestScore_MonotonicInPassedChecks(t *testing.T) {
	t.Parallel()

	const total = 9
	prev := -1
	for passed := 0; passed <= total; passed++ {
		score := Score(checksWith(passed, total-passed))
		require.Greater(t, score, prev, "score must grow with passed checks")
		prev = score
	}
}

func TestScore_EqualShares(t *testing.T) {
	t.Parallel()

	// 3 of 4 checks at 25 points each.
	require.Equal(t, 75, Score(checksWith(3, 1)))
	// 1 of 3: round(33.33).
	require.Equal(t, 33, Score(checksWith(1, 2)))
	// 2 of 3: round(66.67).
	require.Equal(t, 67, Score(checksWith(2, 1)))
}

func TestGradeFor_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		grade string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{50, "D"},
		{49, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.grade, GradeFor(tc.score), "score %d", tc.score)
	}
}
