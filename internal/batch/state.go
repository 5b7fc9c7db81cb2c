/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mikeb26/mojimix/internal/types"
)

// Mode selects how progress items are folded into the view.
type Mode string

const (
	// ModeIndexed keeps one fixed-size grid of slots for the latest batch.
	ModeIndexed Mode = "indexed"
	// ModeLog keeps an append-only history across all batches.
	ModeLog Mode = "log"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeIndexed, ModeLog:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q; want %v or %v", s, ModeIndexed,
		ModeLog)
}

type SlotStatus string

const (
	SlotPending SlotStatus = "pending"
	SlotLoading SlotStatus = "loading"
	SlotSuccess SlotStatus = "success"
	SlotError   SlotStatus = "error"
)

// Slot is one fixed position of the indexed grid.
type Slot struct {
	Status          SlotStatus
	Representations types.Representations
	Warning         string
	Error           string
}

// HistoryEntry is an immutable record of one completed item in log mode.
// The request fields are captured when the batch was dispatched.
type HistoryEntry struct {
	ID         string
	BatchID    string
	Index      int
	Emojis     []string
	Modifier   string
	Model      types.Model
	ModelLabel string
	CreatedAt  time.Time

	Representations types.Representations
	Warning         string
	Error           string
}

func (e HistoryEntry) Succeeded() bool {
	return e.Representations.Any()
}

// View is a point-in-time copy of the reconciled state. Callers may retain
// and inspect it freely; it is never mutated after being returned.
type View struct {
	Mode         Mode
	Epoch        uint64
	Slots        []Slot
	History      []HistoryEntry
	PendingCount int
	LastError    string
	SelectedID   string
}

// IsLoading reports whether results are still outstanding.
func (v View) IsLoading() bool {
	if v.Mode == ModeIndexed {
		return slices.ContainsFunc(v.Slots, func(s Slot) bool {
			return s.Status == SlotLoading
		})
	}
	return v.PendingCount > 0
}

// Selected returns the currently selected history entry, if any.
func (v View) Selected() (HistoryEntry, bool) {
	if v.SelectedID == "" {
		return HistoryEntry{}, false
	}
	for _, e := range v.History {
		if e.ID == v.SelectedID {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// Find returns the history entry with the given ID.
func (v View) Find(id string) (HistoryEntry, bool) {
	idx := slices.IndexFunc(v.History, func(e HistoryEntry) bool {
		return e.ID == id
	})
	if idx < 0 {
		return HistoryEntry{}, false
	}
	return v.History[idx], true
}

// Counts returns the number of successful and failed results in the view.
func (v View) Counts() (succeeded, failed int) {
	if v.Mode == ModeIndexed {
		for _, s := range v.Slots {
			switch s.Status {
			case SlotSuccess:
				succeeded++
			case SlotError:
				failed++
			}
		}
		return succeeded, failed
	}
	for _, e := range v.History {
		if e.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// viewState is the mutable state owned by an Engine; it is only touched by
// reconcilers while the engine's lock is held.
type viewState struct {
	slots     []Slot
	history   []HistoryEntry
	pending   int
	lastError string
	selected  string
}

func (s *viewState) snapshot(mode Mode, epoch uint64) View {
	return View{
		Mode:         mode,
		Epoch:        epoch,
		Slots:        cloneSlots(s.slots),
		History:      cloneHistory(s.history),
		PendingCount: s.pending,
		LastError:    s.lastError,
		SelectedID:   s.selected,
	}
}

// cloneSlots and cloneHistory copy down to the image blobs so that a View
// shares nothing with the engine's state.
func cloneSlots(slots []Slot) []Slot {
	out := slices.Clone(slots)
	for ii := range out {
		out[ii].Representations = out[ii].Representations.Clone()
	}
	return out
}

func cloneHistory(history []HistoryEntry) []HistoryEntry {
	out := slices.Clone(history)
	for ii := range out {
		out[ii].Emojis = slices.Clone(out[ii].Emojis)
		out[ii].Representations = out[ii].Representations.Clone()
	}
	return out
}

func (s *viewState) decrementPending(n int) {
	s.pending -= n
	if s.pending < 0 {
		s.pending = 0
	}
}
