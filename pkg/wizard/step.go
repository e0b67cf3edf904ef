package wizard

// Step is one screen of the wizard.
type Step int

const (
	StepGuests Step = iota + 1
	StepPrices
	StepShares
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepGuests:
		return "Guests"
	case StepPrices:
		return "Prices"
	case StepShares:
		return "Shares"
	case StepResult:
		return "Result"
	}
	return "Unknown"
}

// Steps returns every step in order.
func Steps() []Step {
	return []Step{StepGuests, StepPrices, StepShares, StepResult}
}
