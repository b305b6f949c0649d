package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/store"
)

// Persisted keys. Each key holds one whole JSON document, replaced in full
// on every write. Names are carried over from the original browser storage
// so existing data stays readable.
const (
	keyPatients        = "patients"
	keyCohortDays      = "cohortDays"
	keyCohortStart     = "cohortStart"
	keyCohortDurations = "cohortDurations"
	keyArchivedTours   = "archivedTours"
	keyLastFileNames   = "lastFileNameByCohort"
	keyVisibleKinds    = "kf_visibleRubryki"
	keyUsers           = "kf_users"
	keySession         = "kf_sessionUser"
)

// StateRepo maps application state onto the KV store.
type StateRepo struct {
	kv     store.KV
	logger *zap.Logger
}

func NewStateRepo(kv store.KV, logger *zap.Logger) *StateRepo {
	return &StateRepo{kv: kv, logger: logger}
}

// load unmarshals key into out. A missing key or an undecodable document
// leaves out untouched and reports found=false; callers fall back to
// defaults in both cases.
func (r *StateRepo) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		r.logger.Warn("discarding undecodable document", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *StateRepo) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(b), 0); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *StateRepo) Patients(ctx context.Context) (map[string]domain.Patient, error) {
	out := map[string]domain.Patient{}
	if _, err := r.load(ctx, keyPatients, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StateRepo) SavePatients(ctx context.Context, patients map[string]domain.Patient) error {
	return r.save(ctx, keyPatients, patients)
}

func (r *StateRepo) CohortDays(ctx context.Context) (map[domain.Cohort]int, error) {
	out := map[domain.Cohort]int{}
	found, err := r.load(ctx, keyCohortDays, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		out = map[domain.Cohort]int{domain.CohortAmbu: 0, domain.CohortDzienni: 0}
	}
	return out, nil
}

func (r *StateRepo) SaveCohortDays(ctx context.Context, days map[domain.Cohort]int) error {
	return r.save(ctx, keyCohortDays, days)
}

func (r *StateRepo) CohortStarts(ctx context.Context) (map[domain.Cohort]string, error) {
	out := map[domain.Cohort]string{}
	if _, err := r.load(ctx, keyCohortStart, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StateRepo) SaveCohortStarts(ctx context.Context, starts map[domain.Cohort]string) error {
	return r.save(ctx, keyCohortStart, starts)
}

func (r *StateRepo) CohortDurations(ctx context.Context) (map[domain.Cohort]int, error) {
	out := map[domain.Cohort]int{}
	found, err := r.load(ctx, keyCohortDurations, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		out = map[domain.Cohort]int{domain.CohortAmbu: 10, domain.CohortDzienni: 15}
	}
	return out, nil
}

func (r *StateRepo) SaveCohortDurations(ctx context.Context, durations map[domain.Cohort]int) error {
	return r.save(ctx, keyCohortDurations, durations)
}

func (r *StateRepo) Archives(ctx context.Context) (map[domain.Cohort][]domain.ArchivedTour, error) {
	out := map[domain.Cohort][]domain.ArchivedTour{}
	if _, err := r.load(ctx, keyArchivedTours, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StateRepo) SaveArchives(ctx context.Context, archives map[domain.Cohort][]domain.ArchivedTour) error {
	return r.save(ctx, keyArchivedTours, archives)
}

func (r *StateRepo) LastFileNames(ctx context.Context) (map[domain.Cohort]string, error) {
	out := map[domain.Cohort]string{}
	if _, err := r.load(ctx, keyLastFileNames, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StateRepo) SaveLastFileNames(ctx context.Context, names map[domain.Cohort]string) error {
	return r.save(ctx, keyLastFileNames, names)
}

func (r *StateRepo) VisibleKinds(ctx context.Context) ([]domain.Kind, error) {
	var out []domain.Kind
	found, err := r.load(ctx, keyVisibleKinds, &out)
	if err != nil {
		return nil, err
	}
	if !found || out == nil {
		out = domain.AllKinds()
	}
	return out, nil
}

func (r *StateRepo) SaveVisibleKinds(ctx context.Context, kinds []domain.Kind) error {
	return r.save(ctx, keyVisibleKinds, kinds)
}

func (r *StateRepo) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if _, err := r.load(ctx, keyUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StateRepo) SaveUsers(ctx context.Context, users []domain.User) error {
	return r.save(ctx, keyUsers, users)
}

// SessionUser returns the persisted session username, "" when logged out.
func (r *StateRepo) SessionUser(ctx context.Context) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	found, err := r.load(ctx, keySession, &out)
	if err != nil || !found {
		return "", err
	}
	return out.Username, nil
}

func (r *StateRepo) SaveSessionUser(ctx context.Context, username string) error {
	return r.save(ctx, keySession, map[string]string{"username": username})
}

func (r *StateRepo) ClearSessionUser(ctx context.Context) error {
	if err := r.kv.Del(ctx, keySession); err != nil {
		return fmt.Errorf("clear %s: %w", keySession, err)
	}
	return nil
}
