package entity

// Outcome is one simulated ripeness classification label.
type Outcome string

// The four fixed outcomes, drawn with equal probability.
const (
	OutcomeUnripe       Outcome = "ดิบ"                                 // unripe
	OutcomeReadyToCut   Outcome = "พร้อมตัด"                            // ready to harvest
	OutcomeRipe         Outcome = "สุก"                                 // ripe
	OutcomeUndetermined Outcome = "ไม่สามารถระบุได้ กรุณาดำเนินการใหม่" // could not be determined, try again
)

var outcomes = []Outcome{OutcomeUnripe, OutcomeReadyToCut, OutcomeRipe, OutcomeUndetermined}

// Outcomes returns a copy of the outcome set in draw order.
func Outcomes() []Outcome {
	out := make([]Outcome, len(outcomes))
	copy(out, outcomes)
	return out
}

// Valid reports whether o is one of the fixed outcomes.
func (o Outcome) Valid() bool {
	for _, known := range outcomes {
		if o == known {
			return true
		}
	}
	return false
}

func (o Outcome) String() string {
	return string(o)
}
