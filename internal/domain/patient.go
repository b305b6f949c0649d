package domain

// Patient is the canonical registry record. The card number is the identity;
// the registry keys patients by it, so Card is omitted from the persisted
// per-card document (mirrors the stored map shape).
type Patient struct {
	Card       string      `json:"card,omitempty"`
	Name       string      `json:"name"`
	Time       string      `json:"time,omitempty"` // arrival time as written in the sheet
	Cohort     Cohort      `json:"cohort,omitempty"`
	Treatments []Treatment `json:"treatments"`
}

// Clone returns a deep copy; registry snapshots (archives, API views) must
// not alias live treatment slices.
func (p Patient) Clone() Patient {
	out := p
	if p.Treatments != nil {
		out.Treatments = make([]Treatment, len(p.Treatments))
		copy(out.Treatments, p.Treatments)
	}
	return out
}
