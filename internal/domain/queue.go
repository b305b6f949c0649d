package domain

import "strings"

// QueueEntry is one position in a per-kind queue. Entries are session-local:
// queues start empty each day and are never persisted.
type QueueEntry struct {
	ID              string `json:"id"`
	Card            string `json:"card"`
	Name            string `json:"name"`
	Desc            string `json:"desc"`
	Done            bool   `json:"done"`
	ManualPriority  bool   `json:"manualPriority,omitempty"`
	ManualChangedAt int64  `json:"manualChangedAt,omitempty"`
}

// EntryID is the deterministic queue identity. Enrolling the same patient
// twice must not duplicate an entry with the same (card, kind, desc).
func EntryID(card string, kind Kind, desc string) string {
	return card + ":" + string(kind) + ":" + strings.TrimSpace(desc)
}
