package webapi

import (
	"context"

	"github.com/gobwas/glob"

	"github.com/nimbleqa/xrmkit/pkg/logging"
)

// Deleter is the slice of Client the tracker needs. Tests substitute a
// fake.
type Deleter interface {
	Delete(ctx context.Context, entitySet, id string) error
}

// trackedRecord is one created record awaiting cleanup.
type trackedRecord struct {
	entitySet string
	id        string
}

// Tracker is a LIFO of created records. Push after every successful
// create; CleanupAll deletes in reverse creation order, which keeps
// relationship-bound chains (parent created first, child second) from
// tripping referential-integrity failures in the remote store.
type Tracker struct {
	records []trackedRecord
	log     *logging.Logger
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	log, _ := logging.NewLogger("tracker")
	return &Tracker{log: log}
}

// Push records a created entity for later cleanup.
func (t *Tracker) Push(entitySet, id string) {
	t.records = append(t.records, trackedRecord{entitySet: entitySet, id: NormalizeID(id)})
}

// Len returns the number of records awaiting cleanup.
func (t *Tracker) Len() int {
	return len(t.records)
}

// CleanupAll deletes every tracked record, newest first. Individual
// failures are logged and skipped so one missing record does not strand
// the rest; the stack is emptied either way. Returns the number of
// successful deletions.
func (t *Tracker) CleanupAll(ctx context.Context, d Deleter) int {
	deleted := 0
	for i := len(t.records) - 1; i >= 0; i-- {
		rec := t.records[i]
		if err := d.Delete(ctx, rec.entitySet, rec.id); err != nil {
			t.log.Warnf("cleanup of %s(%s) failed: %v", rec.entitySet, rec.id, err)
			continue
		}
		deleted++
	}
	t.records = t.records[:0]
	return deleted
}

// CleanupMatching deletes only the tracked records whose entity set
// matches the glob pattern, newest first, leaving the rest on the stack
// in their original order. Returns the number of successful deletions.
func (t *Tracker) CleanupMatching(ctx context.Context, d Deleter, pattern string) (int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return 0, err
	}

	deleted := 0
	var kept []trackedRecord
	for i := len(t.records) - 1; i >= 0; i-- {
		rec := t.records[i]
		if !g.Match(rec.entitySet) {
			kept = append(kept, rec)
			continue
		}
		if err := d.Delete(ctx, rec.entitySet, rec.id); err != nil {
			t.log.Warnf("cleanup of %s(%s) failed: %v", rec.entitySet, rec.id, err)
			continue
		}
		deleted++
	}

	// kept was collected newest-first; restore creation order.
	t.records = t.records[:0]
	for i := len(kept) - 1; i >= 0; i-- {
		t.records = append(t.records, kept[i])
	}
	return deleted, nil
}
