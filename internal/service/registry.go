package service

import (
	"context"
	"sort"
	"strings"

	"kolejki-fizjo/internal/domain"
)

const searchLimit = 10

// Patients returns registry snapshots sorted by card number.
func (a *App) Patients() []domain.Patient {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Patient, 0, len(a.patients))
	for _, p := range a.patients {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Card < out[j].Card })
	return out
}

// Patient looks up one registry record.
func (a *App) Patient(card string) (domain.Patient, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.patients[card]
	if !ok {
		return domain.Patient{}, false
	}
	return p.Clone(), true
}

// SearchPatients matches the query against card numbers (substring) and
// names (case-insensitive substring), capped for the dropdown.
func (a *App) SearchPatients(query string) []domain.Patient {
	if query == "" {
		return nil
	}
	lower := strings.ToLower(query)

	a.mu.Lock()
	defer a.mu.Unlock()
	cards := make([]string, 0, len(a.patients))
	for card := range a.patients {
		cards = append(cards, card)
	}
	sort.Strings(cards)

	var out []domain.Patient
	for _, card := range cards {
		p := a.patients[card]
		if strings.Contains(card, query) || strings.Contains(strings.ToLower(p.Name), lower) {
			out = append(out, p.Clone())
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out
}

// AddPatient registers a patient by hand with no treatments; those are added
// in the edit flow. An existing card number is left untouched.
func (a *App) AddPatient(ctx context.Context, card, name string, cohort domain.Cohort) (bool, error) {
	card = strings.TrimSpace(card)
	name = strings.TrimSpace(name)
	if card == "" || name == "" {
		return false, ErrCardAndNameRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.patients[card]; exists {
		return false, nil
	}
	a.patients[card] = &domain.Patient{Card: card, Name: name, Cohort: cohort, Treatments: []domain.Treatment{}}
	return true, a.persistPatients(ctx)
}

// UpdatePatient replaces a patient's name and treatment list. Treatments
// with a kind outside the six queues are dropped.
func (a *App) UpdatePatient(ctx context.Context, card, name string, treatments []domain.Treatment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.patients[card]
	if !ok {
		return ErrPatientNotFound
	}
	p.Name = name
	p.Treatments = make([]domain.Treatment, 0, len(treatments))
	for _, t := range treatments {
		if _, ok := domain.KindFromLabel(string(t.Kind)); ok {
			p.Treatments = append(p.Treatments, t)
		}
	}
	return a.persistPatients(ctx)
}

// DeletePatients removes patients from the registry and drops their entries
// from every queue, single and bulk delete alike.
func (a *App) DeletePatients(ctx context.Context, cards ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := map[string]bool{}
	for _, card := range cards {
		if _, ok := a.patients[card]; ok {
			delete(a.patients, card)
			removed[card] = true
		}
	}
	if len(removed) == 0 {
		return nil
	}
	a.purgeCardsLocked(removed)
	return a.persistPatients(ctx)
}
