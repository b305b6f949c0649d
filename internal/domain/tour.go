package domain

// Cohort is one of the two independently tracked patient populations.
type Cohort string

const (
	CohortAmbu    Cohort = "ambu"
	CohortDzienni Cohort = "dzienni"
)

// Cohorts returns both cohorts in display order.
func Cohorts() []Cohort {
	return []Cohort{CohortAmbu, CohortDzienni}
}

// ParseCohort validates a cohort name from the API surface.
func ParseCohort(s string) (Cohort, bool) {
	switch Cohort(s) {
	case CohortAmbu, CohortDzienni:
		return Cohort(s), true
	}
	return "", false
}

// TourState is the per-cohort tour progress. Day 0 means the tour has not
// started; the start date is set once and never overwritten while set.
type TourState struct {
	Day      int    `json:"day"`
	Start    string `json:"start,omitempty"` // YYYY-MM-DD
	Duration int    `json:"duration"`        // target days
}

// ArchivedTour is the snapshot taken when a cohort is closed. ID is the
// close timestamp (RFC 3339); tours older than the retention window are
// pruned on archive load.
type ArchivedTour struct {
	ID       string             `json:"id"`
	Name     string             `json:"name,omitempty"` // last imported file name, if any
	Patients map[string]Patient `json:"patients"`
}
