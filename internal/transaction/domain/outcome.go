package domain

// Outcome tags the result of a best-effort step.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// Applied is the outcome of a best-effort step that took effect.
func Applied() Outcome {
	return Outcome{Applied: true}
}

// Skipped is the outcome of a best-effort step that did not take effect.
func Skipped(reason string) Outcome {
	return Outcome{Reason: reason}
}

// String renders "applied" or "skipped: <reason>".
func (o Outcome) String() string {
	if o.Applied {
		return "applied"
	}
	return "skipped: " + o.Reason
}
