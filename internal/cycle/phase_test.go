package cycle

import "testing"

func TestPhaseForDayBoundaries(t *testing.T) {
	cases := []struct {
		day  int
		want Phase
	}{
		{0, PhaseUnknown},
		{-3, PhaseUnknown},
		{1, PhaseMenstrual},
		{5, PhaseMenstrual},
		{6, PhaseFollicular},
		{13, PhaseFollicular},
		{14, PhaseOvulation},
		{16, PhaseOvulation},
		{17, PhaseLuteal},
		{40, PhaseLuteal},
	}

	for _, tc := range cases {
		if got := PhaseForDay(tc.day); got != tc.want {
			t.Fatalf("day %d: expected %s, got %s", tc.day, tc.want, got)
		}
	}
}
