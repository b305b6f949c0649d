package importer

import (
	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
)

// Strategy names which parser produced the committed patients.
type Strategy string

const (
	StrategyNewFormat Strategy = "new-format"
	StrategyBlocks    Strategy = "blocks"
	StrategyRecords   Strategy = "records"
)

// Result is a fully parsed import, not yet committed to the registry.
type Result struct {
	Patients   ParsedPatients
	Issues     []RowIssue
	Duplicates []DuplicateNotice
	Strategy   Strategy
	// Replace is set when the block-layout fallback produced the patients:
	// committing then fully replaces existing card records instead of
	// merging treatments onto them.
	Replace bool
}

// Blocked reports whether validation issues halt the commit.
func (r *Result) Blocked() bool { return len(r.Issues) > 0 }

// Importer runs the full parse pipeline over an uploaded spreadsheet.
type Importer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Importer {
	return &Importer{logger: logger}
}

// Run parses one upload. Order matters and is pinned by tests:
//
//  1. positional pass: new format first, block layout when the new format
//     finds zero treatments across all patients;
//  2. required-header check on the header-keyed view (abort on miss);
//  3. required-field validation; any issue blocks the whole import;
//  4. when the positional pass found at least one treatment its output
//     replaces the validated row-by-row result wholesale. The positional
//     data skipped the per-row gate; this overwrite is the source
//     behavior and is kept as-is.
//
// Every committed patient is stamped with the importing cohort.
func (imp *Importer) Run(data []byte, cohort domain.Cohort) (*Result, error) {
	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	matrix := wb.Matrix()

	positional := ParseNewFormat(matrix)
	strategy := StrategyNewFormat
	if positional.TreatmentCount() == 0 {
		positional = ParseBlocks(matrix)
		strategy = StrategyBlocks
	}

	if err := CheckRequiredHeaders(wb.Headers()); err != nil {
		return nil, err
	}

	v := ValidateRecords(wb.Records())
	if len(v.Issues) > 0 {
		imp.logger.Warn("import blocked by row validation",
			zap.Int("issues", len(v.Issues)),
			zap.Int("rows", len(wb.Records())))
		return &Result{Issues: v.Issues, Duplicates: v.Duplicates}, nil
	}

	res := &Result{Patients: v.Parsed, Duplicates: v.Duplicates, Strategy: StrategyRecords}
	if positional.TreatmentCount() > 0 {
		res.Patients = positional
		res.Strategy = strategy
		res.Replace = strategy == StrategyBlocks
	}

	for _, p := range res.Patients {
		p.Cohort = cohort
	}

	imp.logger.Info("import parsed",
		zap.String("strategy", string(res.Strategy)),
		zap.Int("patients", len(res.Patients)),
		zap.Int("treatments", res.Patients.TreatmentCount()),
		zap.Int("duplicates", len(res.Duplicates)))
	return res, nil
}
