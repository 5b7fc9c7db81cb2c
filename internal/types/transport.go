/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package types

import "context"

// Transport issues batch generation calls to a backend and pushes per-item
// results to subscribers of the batch ID.
//
// All ProgressItems for a batch are published before GenerateBatch returns.
// A non-nil error from GenerateBatch is a batch-level failure; per-item
// failures are reported through ProgressItem.Error instead.
//
//go:generate mockgen --build_flags=--mod=mod -destination=transport_mock.go -package=$GOPACKAGE github.com/mikeb26/mojimix/internal/types Transport
type Transport interface {
	// SubscribeProgress registers a channel for batchID's items. depth is
	// the number of items the caller expects and must be at least the
	// batch Count so that delivery never blocks.
	SubscribeProgress(batchID string, depth int) chan ProgressItem
	// UnsubscribeProgress removes and closes ch.
	UnsubscribeProgress(ch chan ProgressItem, batchID string)
	GenerateBatch(ctx context.Context, batchID string,
		req GenerationRequest) (BatchSummary, error)
}
