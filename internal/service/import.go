package service

import (
	"context"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
)

// ImportOutcome is what the import handler reports back: either a committed
// summary or the blocking issue list (in which case nothing was committed).
type ImportOutcome struct {
	Committed  bool                       `json:"committed"`
	Strategy   importer.Strategy          `json:"strategy,omitempty"`
	Patients   int                        `json:"patients,omitempty"`
	Treatments int                        `json:"treatments,omitempty"`
	Issues     []importer.RowIssue        `json:"issues,omitempty"`
	Duplicates []importer.DuplicateNotice `json:"duplicates,omitempty"`
}

// ImportFile parses an uploaded spreadsheet and commits the result into the
// registry. The source filename is remembered per cohort before parsing (it
// later names the archived tour). Validation issues halt the commit and are
// all returned at once. Committing merges per card: a new card is inserted,
// an existing one keeps its name unless empty and accumulates treatments --
// except when the block-layout fallback produced the data, which replaces
// the whole card record. A successful first import starts the cohort tour.
func (a *App) ImportFile(ctx context.Context, data []byte, fileName string, cohort domain.Cohort) (*ImportOutcome, error) {
	if len(data) > importer.MaxFileSize {
		return nil, importer.ErrFileTooLarge
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastFiles[cohort] = fileName
	if err := a.repo.SaveLastFileNames(ctx, a.lastFiles); err != nil {
		return nil, err
	}

	res, err := a.importer.Run(data, cohort)
	if err != nil {
		return nil, err
	}
	if res.Blocked() {
		return &ImportOutcome{Issues: res.Issues, Duplicates: res.Duplicates}, nil
	}

	for card, p := range res.Patients {
		existing := a.patients[card]
		if existing == nil || res.Replace {
			cp := p.Clone()
			a.patients[card] = &cp
			continue
		}
		if existing.Name == "" && p.Name != "" {
			existing.Name = p.Name
		}
		if existing.Time == "" && p.Time != "" {
			existing.Time = p.Time
		}
		existing.Cohort = cohort
		existing.Treatments = append(existing.Treatments, p.Treatments...)
	}
	if err := a.persistPatients(ctx); err != nil {
		return nil, err
	}

	if err := a.startTourLocked(ctx, cohort); err != nil {
		return nil, err
	}

	a.logger.Info("import committed",
		zap.String("cohort", string(cohort)),
		zap.String("file", fileName),
		zap.String("strategy", string(res.Strategy)),
		zap.Int("patients", len(res.Patients)))
	return &ImportOutcome{
		Committed:  true,
		Strategy:   res.Strategy,
		Patients:   len(res.Patients),
		Treatments: res.Patients.TreatmentCount(),
		Duplicates: res.Duplicates,
	}, nil
}

// startTourLocked sets the start date once and bumps day 0 to 1. Both fields
// stay untouched when already set.
func (a *App) startTourLocked(ctx context.Context, cohort domain.Cohort) error {
	changed := false
	if a.starts[cohort] == "" {
		a.starts[cohort] = a.now().Format("2006-01-02")
		if err := a.repo.SaveCohortStarts(ctx, a.starts); err != nil {
			return err
		}
		changed = true
	}
	if a.days[cohort] == 0 {
		a.days[cohort] = 1
		if err := a.repo.SaveCohortDays(ctx, a.days); err != nil {
			return err
		}
		changed = true
	}
	if changed {
		a.logger.Info("tour started",
			zap.String("cohort", string(cohort)),
			zap.String("start", a.starts[cohort]))
	}
	return nil
}
