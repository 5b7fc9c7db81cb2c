/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */

package types

// ProgressItem is one element of a batch's result stream. It is emitted by
// the transport once per generated index and routed to subscribers using the
// batch ID.
//
// At most one of Representations and Error is meaningful; an item with
// neither is an empty placeholder.
type ProgressItem struct {
	Index           int
	Representations Representations
	Warning         string
	Error           string
}

// Succeeded reports whether the item carries at least one usable rendering.
func (item ProgressItem) Succeeded() bool {
	return item.Representations.Any()
}

// BatchSummary is returned when a batch's transport call resolves.
type BatchSummary struct {
	Count    int
	MIMEType string
}
