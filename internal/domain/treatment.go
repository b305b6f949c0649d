package domain

// Kind is one of the six fixed treatment queues. The string values are the
// queue labels the clinic uses; they are also the persisted JSON values, so
// they must stay stable.
type Kind string

const (
	KindCurrents       Kind = "Prądy"
	KindLaser          Kind = "Laser"
	KindUltrasound     Kind = "Ultradźwięki"
	KindMagnetotherapy Kind = "Magnetoterapia"
	KindSollux         Kind = "Sollux"
	KindKinesiotherapy Kind = "Kineza"
)

// AllKinds returns the queue kinds in display order.
func AllKinds() []Kind {
	return []Kind{
		KindCurrents,
		KindLaser,
		KindUltrasound,
		KindMagnetotherapy,
		KindSollux,
		KindKinesiotherapy,
	}
}

// KindFromLabel resolves an exact queue label ("Prądy", "Laser", ...).
// Unknown labels report ok=false; callers drop those treatments instead of
// guessing a queue.
func KindFromLabel(label string) (Kind, bool) {
	switch Kind(label) {
	case KindCurrents, KindLaser, KindUltrasound, KindMagnetotherapy, KindSollux, KindKinesiotherapy:
		return Kind(label), true
	}
	return "", false
}

// KinezaTypes are the kinesiotherapy sub-types selectable when editing a
// patient by hand.
var KinezaTypes = []string{
	"Ćw. ind.",
	"Ćw. izometryczne",
	"Ćw. czynne wolne",
	"Ćw. w odciążeniu",
}

// Treatment is one prescribed procedure: the queue it belongs to plus a
// free-text description (body area, current type, exercise type).
type Treatment struct {
	Kind Kind   `json:"kind"`
	Desc string `json:"desc"`
}
