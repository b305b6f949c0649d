package service

import (
	"time"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
)

// Enroll expands a patient's treatment list into queue entries, one per
// treatment, appended FIFO. The entry identity (card, kind, trimmed desc)
// makes enrollment idempotent: re-enrolling adds only treatments not already
// queued. Unknown card numbers are a no-op.
func (a *App) Enroll(card string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.patients[card]
	if !ok {
		return false
	}
	for _, t := range p.Treatments {
		if _, known := domain.KindFromLabel(string(t.Kind)); !known {
			continue
		}
		id := domain.EntryID(card, t.Kind, t.Desc)
		if a.findEntryLocked(t.Kind, id) >= 0 {
			continue
		}
		a.queues[t.Kind] = append(a.queues[t.Kind], &domain.QueueEntry{
			ID:   id,
			Card: card,
			Name: p.Name,
			Desc: t.Desc,
		})
	}
	return true
}

// Queues returns a snapshot of every queue in insertion order.
func (a *App) Queues() map[domain.Kind][]domain.QueueEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[domain.Kind][]domain.QueueEntry, len(a.queues))
	for kind, entries := range a.queues {
		list := make([]domain.QueueEntry, len(entries))
		for i, e := range entries {
			list[i] = *e
		}
		out[kind] = list
	}
	return out
}

// ToggleDone flips an entry between pending and done. Marking done schedules
// removal after the configured delay; toggling back before it fires cancels
// the removal. At most one timer exists per entry.
func (a *App) ToggleDone(kind domain.Kind, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.findEntryLocked(kind, id)
	if i < 0 {
		return false
	}
	e := a.queues[kind][i]
	if !e.Done {
		e.Done = true
		a.cancelTimerLocked(id)
		a.timers[id] = time.AfterFunc(a.removalDelay, func() { a.expireEntry(kind, id) })
	} else {
		e.Done = false
		a.cancelTimerLocked(id)
	}
	return true
}

// MoveUp swaps an entry with its immediate predecessor. The head of the
// queue has nowhere to go; that is a no-op, not a failure.
func (a *App) MoveUp(kind domain.Kind, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.findEntryLocked(kind, id)
	if i < 0 {
		return false
	}
	if i == 0 {
		return true
	}
	q := a.queues[kind]
	q[i-1], q[i] = q[i], q[i-1]
	return true
}

// MoveToFront splices an entry out and prepends it, marking it as a manual
// priority. Done state is untouched. An entry already at the front stays
// put and reports success.
func (a *App) MoveToFront(kind domain.Kind, id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.findEntryLocked(kind, id)
	if i < 0 {
		return false
	}
	if i == 0 {
		return true
	}
	q := a.queues[kind]
	e := q[i]
	e.ManualPriority = true
	e.ManualChangedAt = a.now().UnixMilli()
	copy(q[1:i+1], q[:i])
	q[0] = e
	return true
}

func (a *App) findEntryLocked(kind domain.Kind, id string) int {
	for i, e := range a.queues[kind] {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// expireEntry is the delayed-removal callback. The entry may have been
// un-toggled or removed while the timer was pending; it is only deleted
// while still marked done.
func (a *App) expireEntry(kind domain.Kind, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.timers, id)
	i := a.findEntryLocked(kind, id)
	if i < 0 || !a.queues[kind][i].Done {
		return
	}
	a.queues[kind] = append(a.queues[kind][:i], a.queues[kind][i+1:]...)
	a.logger.Debug("queue entry removed after done delay",
		zap.String("kind", string(kind)), zap.String("id", id))
}

func (a *App) cancelTimerLocked(id string) {
	if t, ok := a.timers[id]; ok {
		t.Stop()
		delete(a.timers, id)
	}
}

// purgeCardsLocked removes every queue entry belonging to the given cards
// and cancels their pending timers. Used by patient delete and cohort close.
func (a *App) purgeCardsLocked(cards map[string]bool) {
	for kind, entries := range a.queues {
		kept := entries[:0]
		for _, e := range entries {
			if cards[e.Card] {
				a.cancelTimerLocked(e.ID)
				continue
			}
			kept = append(kept, e)
		}
		a.queues[kind] = kept
	}
}
