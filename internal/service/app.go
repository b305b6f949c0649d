package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
	"kolejki-fizjo/internal/repository"
)

const (
	// removalDelayDefault is how long a done entry stays visible before it
	// leaves the queue.
	removalDelayDefault = 10 * time.Second
	// archiveRetention is how long closed tours are kept.
	archiveRetention = 20 * 24 * time.Hour
)

var (
	ErrCardAndNameRequired = errors.New("card number and name are required")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrTourNotFound        = errors.New("tour not found")
)

// App owns all mutable application state: the patient registry, the per-kind
// queues, and the cohort tour counters. Every mutation happens under one
// mutex and persists the affected documents through the state repo. Queues
// are deliberately not persisted: each day starts with empty queues.
type App struct {
	mu           sync.Mutex
	logger       *zap.Logger
	repo         *repository.StateRepo
	importer     *importer.Importer
	now          func() time.Time
	removalDelay time.Duration

	patients  map[string]*domain.Patient
	queues    map[domain.Kind][]*domain.QueueEntry
	timers    map[string]*time.Timer // entry ID -> pending removal
	days      map[domain.Cohort]int
	starts    map[domain.Cohort]string
	durations map[domain.Cohort]int
	lastFiles map[domain.Cohort]string
	visible   []domain.Kind
}

type Option func(*App)

// WithClock replaces the wall clock; tests pin start dates and archive ids.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithRemovalDelay overrides the done-entry removal delay; tests shorten it.
func WithRemovalDelay(d time.Duration) Option {
	return func(a *App) { a.removalDelay = d }
}

// NewApp loads persisted state and returns a ready application service.
func NewApp(ctx context.Context, repo *repository.StateRepo, logger *zap.Logger, opts ...Option) (*App, error) {
	a := &App{
		logger:       logger,
		repo:         repo,
		importer:     importer.New(logger),
		now:          time.Now,
		removalDelay: removalDelayDefault,
		patients:     map[string]*domain.Patient{},
		queues:       map[domain.Kind][]*domain.QueueEntry{},
		timers:       map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, k := range domain.AllKinds() {
		a.queues[k] = nil
	}

	stored, err := repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	for card, p := range stored {
		cp := p.Clone()
		cp.Card = card
		a.patients[card] = &cp
	}
	if a.days, err = repo.CohortDays(ctx); err != nil {
		return nil, err
	}
	if a.starts, err = repo.CohortStarts(ctx); err != nil {
		return nil, err
	}
	if a.durations, err = repo.CohortDurations(ctx); err != nil {
		return nil, err
	}
	if a.lastFiles, err = repo.LastFileNames(ctx); err != nil {
		return nil, err
	}
	if a.visible, err = repo.VisibleKinds(ctx); err != nil {
		return nil, err
	}

	logger.Info("application state loaded",
		zap.Int("patients", len(a.patients)),
		zap.Int("day_ambu", a.days[domain.CohortAmbu]),
		zap.Int("day_dzienni", a.days[domain.CohortDzienni]))
	return a, nil
}

// Close cancels all pending removal timers.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}

func (a *App) persistPatients(ctx context.Context) error {
	out := make(map[string]domain.Patient, len(a.patients))
	for card, p := range a.patients {
		cp := p.Clone()
		cp.Card = "" // card is the map key
		out[card] = cp
	}
	return a.repo.SavePatients(ctx, out)
}

// VisibleKinds returns the queue kinds selected for display.
func (a *App) VisibleKinds() []domain.Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Kind, len(a.visible))
	copy(out, a.visible)
	return out
}

// SetVisibleKinds stores the display selection. Unknown labels are dropped;
// visibility only filters rendering, enrollment is unaffected.
func (a *App) SetVisibleKinds(ctx context.Context, kinds []domain.Kind) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	valid := make([]domain.Kind, 0, len(kinds))
	for _, k := range kinds {
		if _, ok := domain.KindFromLabel(string(k)); ok {
			valid = append(valid, k)
		}
	}
	a.visible = valid
	return a.repo.SaveVisibleKinds(ctx, valid)
}
