package importer

import "kolejki-fizjo/internal/domain"

// ParsedPatients is the output of one parser run, keyed by card number.
// Repeated card numbers across rows accumulate treatments onto the same
// record; name and arrival time only fill in while unset.
type ParsedPatients map[string]*domain.Patient

func (pp ParsedPatients) ensure(card, name, time string) *domain.Patient {
	p := pp[card]
	if p == nil {
		p = &domain.Patient{Card: card, Name: name, Time: time}
		pp[card] = p
		return p
	}
	if p.Name == "" && name != "" {
		p.Name = name
	}
	if p.Time == "" && time != "" {
		p.Time = time
	}
	return p
}

// TreatmentCount sums treatments across all parsed patients; the strategy
// fallback keys off a zero total.
func (pp ParsedPatients) TreatmentCount() int {
	n := 0
	for _, p := range pp {
		n += len(p.Treatments)
	}
	return n
}
