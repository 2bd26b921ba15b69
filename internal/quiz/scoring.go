package quiz

// Rules holds the scoring and progression constants for a session.
type Rules struct {
	BasePoints         int
	StreakBonus        int
	PenaltyBase        int
	PenaltyPerStreak   int
	RequiredStreak     int
	ChoicesPerQuestion int
	QuestionCount      int
}

// DefaultRules returns the production constants.
func DefaultRules() Rules {
	return Rules{
		BasePoints:         100,
		StreakBonus:        20,
		PenaltyBase:        50,
		PenaltyPerStreak:   10,
		RequiredStreak:     3,
		ChoicesPerQuestion: 4,
		QuestionCount:      10,
	}
}

// Award returns the points earned for a correct answer given the
// pre-answer streak: the bonus scales with the streak after the answer.
func (r Rules) Award(streak int) int {
	return r.BasePoints + (streak+1)*r.StreakBonus
}

// Penalty returns the points lost for an incorrect answer given the
// pre-answer streak. Callers floor the resulting score at zero.
func (r Rules) Penalty(streak int) int {
	return r.PenaltyBase + streak*r.PenaltyPerStreak
}
