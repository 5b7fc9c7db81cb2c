/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mikeb26/mojimix/internal/types"
)

// Reconciler folds batch lifecycle events into a viewState. Every method is
// invoked with the owning engine's lock held, so implementations never see
// concurrent calls.
type Reconciler interface {
	Mode() Mode
	// Exclusive reports whether a new dispatch supersedes every batch that
	// is still open.
	Exclusive() bool
	// Begin applies the acceptance of b.
	Begin(s *viewState, b *batchRecord)
	// Fold applies one progress item belonging to b.
	Fold(s *viewState, b *batchRecord, item types.ProgressItem)
	// Abandon applies a batch-level transport failure of b.
	Abandon(s *viewState, b *batchRecord, err *TransportError)
	// Complete applies the successful resolution of b's transport call.
	Complete(s *viewState, b *batchRecord)
}

// NewReconciler returns the strategy for mode. newID and now default to
// uuid.NewString and time.Now when nil.
func NewReconciler(mode Mode, newID func() string,
	now func() time.Time) Reconciler {

	if mode == ModeIndexed {
		return &indexedReconciler{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &logReconciler{newID: newID, now: now}
}

// indexedReconciler keeps a fixed array of Count slots addressed by
// item.Index.
type indexedReconciler struct{}

func (r *indexedReconciler) Mode() Mode      { return ModeIndexed }
func (r *indexedReconciler) Exclusive() bool { return true }

func (r *indexedReconciler) Begin(s *viewState, b *batchRecord) {
	slots := make([]Slot, b.request.Count)
	for ii := range slots {
		slots[ii] = Slot{Status: SlotLoading}
	}
	s.slots = slots
	s.lastError = ""
}

// Fold overwrites the addressed slot; redelivery of the same item yields the
// same slot.
func (r *indexedReconciler) Fold(s *viewState, b *batchRecord,
	item types.ProgressItem) {

	status := SlotError
	if item.Succeeded() {
		status = SlotSuccess
	}

	s.slots[item.Index] = Slot{
		Status:          status,
		Representations: item.Representations.Clone(),
		Warning:         item.Warning,
		Error:           item.Error,
	}
}

// Abandon leaves unreported slots loading; the failure is reported once via
// lastError.
func (r *indexedReconciler) Abandon(s *viewState, b *batchRecord,
	err *TransportError) {

	s.lastError = err.Error()
}

func (r *indexedReconciler) Complete(s *viewState, b *batchRecord) {}

// logReconciler appends one history entry per item in arrival order and
// tracks outstanding items in the pending counter.
type logReconciler struct {
	newID func() string
	now   func() time.Time
}

func (r *logReconciler) Mode() Mode      { return ModeLog }
func (r *logReconciler) Exclusive() bool { return false }

func (r *logReconciler) Begin(s *viewState, b *batchRecord) {
	s.pending += b.request.Count
	b.outstanding = b.request.Count
}

func (r *logReconciler) Fold(s *viewState, b *batchRecord,
	item types.ProgressItem) {

	entry := HistoryEntry{
		ID:              r.newID(),
		BatchID:         b.id,
		Index:           item.Index,
		Emojis:          slices.Clone(b.request.Emojis),
		Modifier:        b.request.TrimmedModifier(),
		Model:           b.request.Model,
		ModelLabel:      b.request.Model.Label(),
		CreatedAt:       r.now(),
		Representations: item.Representations.Clone(),
		Warning:         item.Warning,
		Error:           item.Error,
	}
	s.history = append(s.history, entry)

	// a redelivered item still gets its own entry but cannot settle more
	// than the batch contributed to pending
	if b.outstanding > 0 {
		b.outstanding--
		s.decrementPending(1)
	}

	if s.selected == "" && entry.Succeeded() {
		s.selected = entry.ID
	}
}

func (r *logReconciler) Abandon(s *viewState, b *batchRecord,
	err *TransportError) {

	s.decrementPending(b.outstanding)
	b.outstanding = 0
	s.lastError = err.Error()
}

// Complete settles items the transport resolved without reporting.
func (r *logReconciler) Complete(s *viewState, b *batchRecord) {
	s.decrementPending(b.outstanding)
	b.outstanding = 0
}
