package quiz

import "testing"

func TestAwardScalesWithStreak(t *testing.T) {
	rules := DefaultRules()

	// streak 0 before the answer: base + 1x bonus
	if got, want := rules.Award(0), rules.BasePoints+rules.StreakBonus; got != want {
		t.Fatalf("award at streak 0 = %d, want %d", got, want)
	}
	// streak 2 before the answer: base + 3x bonus
	if got, want := rules.Award(2), rules.BasePoints+3*rules.StreakBonus; got != want {
		t.Fatalf("award at streak 2 = %d, want %d", got, want)
	}
}

func TestPenaltyScalesWithStreak(t *testing.T) {
	rules := DefaultRules()

	if got, want := rules.Penalty(0), rules.PenaltyBase; got != want {
		t.Fatalf("penalty at streak 0 = %d, want %d", got, want)
	}
	if got, want := rules.Penalty(2), rules.PenaltyBase+2*rules.PenaltyPerStreak; got != want {
		t.Fatalf("penalty at streak 2 = %d, want %d", got, want)
	}
}
