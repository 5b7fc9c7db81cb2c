/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"context"
	"sync"

	"github.com/mikeb26/mojimix/internal/types"
	"pkt.systems/pslog"
)

// BatchHandle correlates one accepted Dispatch with its progress stream and
// terminal transport outcome. A handle is open until the transport call
// resolves or rejects.
type BatchHandle struct {
	ID      string
	Epoch   uint64
	Request types.GenerationRequest

	done    chan struct{}
	summary types.BatchSummary
	err     error
}

func newBatchHandle(rec *batchRecord) *BatchHandle {
	return &BatchHandle{
		ID:      rec.id,
		Epoch:   rec.epoch,
		Request: rec.request.Clone(),
		done:    make(chan struct{}),
	}
}

// Done is closed once the batch has a terminal outcome.
func (h *BatchHandle) Done() <-chan struct{} {
	return h.done
}

func (h *BatchHandle) Closed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the batch closes or ctx is done. A batch-level failure
// is returned as a *TransportError.
func (h *BatchHandle) Wait(ctx context.Context) (types.BatchSummary, error) {
	select {
	case <-ctx.Done():
		return types.BatchSummary{}, ctx.Err()
	case <-h.done:
		if h.err != nil {
			return h.summary, h.err
		}
		return h.summary, nil
	}
}

func (h *BatchHandle) close(summary types.BatchSummary, err *TransportError) {
	h.summary = summary
	if err != nil {
		h.err = err
	}
	close(h.done)
}

// batchRecord is the engine's bookkeeping for one open batch. outstanding is
// guarded by the engine lock.
type batchRecord struct {
	id          string
	epoch       uint64
	generation  uint64
	request     types.GenerationRequest
	outstanding int
	log         pslog.Logger

	superseded    chan struct{}
	supersedeOnce sync.Once
}

// supersede tells the batch's worker that its events can no longer affect
// the view so the progress subscription can be released early.
func (b *batchRecord) supersede() {
	b.supersedeOnce.Do(func() {
		close(b.superseded)
	})
}

type batchResult struct {
	summary types.BatchSummary
	err     error
}
