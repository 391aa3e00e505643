package cycle

// Phase labels one day of a cycle.
type Phase string

const (
	PhaseUnknown    Phase = "unknown"
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// PhaseForDay classifies a 1-indexed day of cycle, where day 1 is the most
// recent period start. Boundaries are fixed and inclusive; there is no
// per-user calibration.
func PhaseForDay(dayOfCycle int) Phase {
	switch {
	case dayOfCycle < 1:
		return PhaseUnknown
	case dayOfCycle <= 5:
		return PhaseMenstrual
	case dayOfCycle <= 13:
		return PhaseFollicular
	case dayOfCycle <= 16:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}
