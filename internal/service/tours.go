package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
)

// Tours returns both cohort tour states.
func (a *App) Tours() map[domain.Cohort]domain.TourState {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := map[domain.Cohort]domain.TourState{}
	for _, c := range domain.Cohorts() {
		out[c] = domain.TourState{Day: a.days[c], Start: a.starts[c], Duration: a.durations[c]}
	}
	return out
}

// NewDay clears the cohort's queue entries (the registry is untouched) and
// advances the day counter. The first new day also starts the tour.
func (a *App) NewDay(ctx context.Context, cohort domain.Cohort) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cards := map[string]bool{}
	for card, p := range a.patients {
		if p.Cohort == cohort {
			cards[card] = true
		}
	}
	a.purgeCardsLocked(cards)

	a.days[cohort]++
	if err := a.repo.SaveCohortDays(ctx, a.days); err != nil {
		return 0, err
	}
	if a.starts[cohort] == "" {
		a.starts[cohort] = a.now().Format("2006-01-02")
		if err := a.repo.SaveCohortStarts(ctx, a.starts); err != nil {
			return 0, err
		}
	}
	return a.days[cohort], nil
}

// ResetDay sets the day counter back to 1. Queues and the start date are
// left alone.
func (a *App) ResetDay(ctx context.Context, cohort domain.Cohort) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.days[cohort] = 1
	return a.repo.SaveCohortDays(ctx, a.days)
}

// SetDuration stores the cohort's target tour length in days.
func (a *App) SetDuration(ctx context.Context, cohort domain.Cohort, days int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.durations[cohort] = days
	return a.repo.SaveCohortDurations(ctx, a.durations)
}

// CloseCohort archives the cohort: every patient with that cohort is
// snapshotted into one ArchivedTour (named after the last imported file),
// removed from the registry and from all queues, and the tour is appended to
// the cohort's archive list. Day counter and start date are not reset; the
// next import starts the cycle again only if they were cleared elsewhere.
func (a *App) CloseCohort(ctx context.Context, cohort domain.Cohort) (*domain.ArchivedTour, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := map[string]domain.Patient{}
	cards := map[string]bool{}
	for card, p := range a.patients {
		if p.Cohort != cohort {
			continue
		}
		cp := p.Clone()
		cp.Card = card
		snapshot[card] = cp
		cards[card] = true
	}

	for card := range cards {
		delete(a.patients, card)
	}
	a.purgeCardsLocked(cards)

	tour := domain.ArchivedTour{
		ID:       a.now().UTC().Format(time.RFC3339),
		Name:     a.lastFiles[cohort],
		Patients: snapshot,
	}

	archives, err := a.repo.Archives(ctx)
	if err != nil {
		return nil, err
	}
	archives[cohort] = append(archives[cohort], tour)
	if err := a.repo.SaveArchives(ctx, archives); err != nil {
		return nil, err
	}
	if err := a.persistPatients(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("cohort closed",
		zap.String("cohort", string(cohort)),
		zap.String("tour", tour.ID),
		zap.Int("patients", len(snapshot)))
	return &tour, nil
}

// Archives returns the cohort's closed tours, pruning entries older than the
// retention window. The sweep runs opportunistically on load and persists
// only when something was dropped.
func (a *App) Archives(ctx context.Context, cohort domain.Cohort) ([]domain.ArchivedTour, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	archives, err := a.repo.Archives(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := a.now().Add(-archiveRetention)
	changed := false
	for _, c := range domain.Cohorts() {
		kept := archives[c][:0]
		for _, tour := range archives[c] {
			ts, err := time.Parse(time.RFC3339, tour.ID)
			if err != nil || ts.Before(cutoff) {
				changed = true
				continue
			}
			kept = append(kept, tour)
		}
		archives[c] = kept
	}
	if changed {
		if err := a.repo.SaveArchives(ctx, archives); err != nil {
			return nil, err
		}
		a.logger.Info("expired tours pruned from archive")
	}
	return archives[cohort], nil
}

// RestorePatient copies a patient out of a closed tour back into the live
// registry, stamped with the archive's cohort. An existing card wins.
func (a *App) RestorePatient(ctx context.Context, cohort domain.Cohort, tourID, card string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	archives, err := a.repo.Archives(ctx)
	if err != nil {
		return err
	}
	tour := findTour(archives[cohort], tourID)
	if tour == nil {
		return ErrTourNotFound
	}
	p, ok := tour.Patients[card]
	if !ok {
		return ErrPatientNotFound
	}
	if _, exists := a.patients[card]; exists {
		return nil
	}
	cp := p.Clone()
	cp.Card = card
	cp.Cohort = cohort
	a.patients[card] = &cp
	return a.persistPatients(ctx)
}

// DeleteTour removes one closed tour from the cohort's archive.
func (a *App) DeleteTour(ctx context.Context, cohort domain.Cohort, tourID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	archives, err := a.repo.Archives(ctx)
	if err != nil {
		return err
	}
	list := archives[cohort]
	for i, tour := range list {
		if tour.ID == tourID {
			archives[cohort] = append(list[:i], list[i+1:]...)
			return a.repo.SaveArchives(ctx, archives)
		}
	}
	return ErrTourNotFound
}

// UpdateArchivedPatient edits a patient inside a closed tour, including
// renumbering the card.
func (a *App) UpdateArchivedPatient(ctx context.Context, cohort domain.Cohort, tourID, origCard string, patient domain.Patient) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	archives, err := a.repo.Archives(ctx)
	if err != nil {
		return err
	}
	tour := findTour(archives[cohort], tourID)
	if tour == nil {
		return ErrTourNotFound
	}
	if _, ok := tour.Patients[origCard]; !ok {
		return ErrPatientNotFound
	}
	card := patient.Card
	if card == "" {
		card = origCard
	}
	if card != origCard {
		delete(tour.Patients, origCard)
	}
	cp := patient.Clone()
	cp.Card = card
	tour.Patients[card] = cp
	return a.repo.SaveArchives(ctx, archives)
}

func findTour(tours []domain.ArchivedTour, id string) *domain.ArchivedTour {
	for i := range tours {
		if tours[i].ID == id {
			return &tours[i]
		}
	}
	return nil
}
