/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikeb26/mojimix/internal/types"
	"pkt.systems/pslog"
)

// Engine coordinates batch dispatch and reconciles each batch's progress
// stream into a single View.
//
// All view mutations happen under one lock, one event at a time: batch
// acceptance, a progress item, a transport outcome or ClearAll. Items of a
// single batch are folded in the order the transport delivered them; no
// ordering is assumed across batches.
type Engine struct {
	transport  types.Transport
	reconciler Reconciler
	newID      func() string
	now        func() time.Time
	maxCount   int
	log        pslog.Logger

	mu         sync.Mutex
	state      viewState
	epoch      uint64
	generation uint64
	open       map[string]*batchRecord

	changes chan struct{}
}

type Option func(*Engine)

// WithMaxCount bounds the per-request item count. n <= 0 means unbounded.
func WithMaxCount(n int) Option {
	return func(e *Engine) {
		e.maxCount = n
	}
}

// WithIDGenerator overrides the generator used for batch and history entry
// IDs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

func WithClock(fn func() time.Time) Option {
	return func(e *Engine) {
		e.now = fn
	}
}

func WithLogger(logger pslog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

func NewEngine(transport types.Transport, mode Mode, opts ...Option) *Engine {
	e := &Engine{
		transport: transport,
		newID:     uuid.NewString,
		now:       time.Now,
		open:      make(map[string]*batchRecord),
		changes:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = pslog.Ctx(context.Background())
	}
	e.reconciler = NewReconciler(mode, e.newID, e.now)

	return e
}

func (e *Engine) Mode() Mode {
	return e.reconciler.Mode()
}

// Changes receives a value after the view changes. Notifications coalesce;
// receivers should call Snapshot to observe the latest state.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// Snapshot returns a copy of the current view.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.snapshot(e.reconciler.Mode(), e.epoch)
}

// OpenBatches returns the number of batches whose transport call has not
// yet completed, including superseded ones.
func (e *Engine) OpenBatches() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.open)
}

func (e *Engine) validate(req types.GenerationRequest) error {
	if len(req.Emojis) == 0 {
		return &ValidationError{Field: "emojis",
			Reason: "must contain at least one emoji"}
	}
	for _, glyph := range req.Emojis {
		if strings.TrimSpace(glyph) == "" {
			return &ValidationError{Field: "emojis",
				Reason: "must not contain blank entries"}
		}
	}
	if req.Count <= 0 {
		return &ValidationError{Field: "count", Reason: "must be positive"}
	}
	if e.maxCount > 0 && req.Count > e.maxCount {
		return &ValidationError{Field: "count",
			Reason: fmt.Sprintf("must not exceed %v", e.maxCount)}
	}
	if !req.Model.Valid() {
		return &ValidationError{Field: "model",
			Reason: fmt.Sprintf("%q is not supported", req.Model)}
	}

	return nil
}

// Dispatch validates req and, if accepted, starts one transport call for
// it. It returns without waiting for results.
//
// A rejected request returns a *ValidationError and has no effect on the
// view or the transport.
func (e *Engine) Dispatch(ctx context.Context,
	req types.GenerationRequest) (*BatchHandle, error) {

	if err := e.validate(req); err != nil {
		return nil, err
	}

	req = req.Clone()
	id := e.newID()
	log := e.log.With("batch", id)

	// subscribe before the call is issued so that no item can be published
	// ahead of the subscription
	progressCh := e.transport.SubscribeProgress(id, req.Count)

	e.mu.Lock()
	if e.reconciler.Exclusive() {
		for _, other := range e.open {
			other.supersede()
		}
	}
	e.generation++
	rec := &batchRecord{
		id:         id,
		epoch:      e.epoch,
		generation: e.generation,
		request:    req,
		log:        log,
		superseded: make(chan struct{}),
	}
	e.reconciler.Begin(&e.state, rec)
	e.open[id] = rec
	e.mu.Unlock()
	e.notify()

	log.Info("batch dispatched", "count", req.Count, "model", req.Model,
		"emojis", strings.Join(req.Emojis, " "))

	handle := newBatchHandle(rec)
	go e.run(ctx, rec, progressCh, handle)

	return handle, nil
}

// ClearAll resets the view to its initial empty state. Batches that are
// still in flight keep running but none of their later events affect the
// view.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	e.epoch++
	e.state = viewState{}
	for _, rec := range e.open {
		rec.supersede()
	}
	inFlight := len(e.open)
	epoch := e.epoch
	e.mu.Unlock()
	e.notify()

	e.log.Info("view cleared", "epoch", epoch, "in_flight", inFlight)
}

// Select makes the history entry with the given ID the current selection.
func (e *Engine) Select(id string) error {
	if e.reconciler.Mode() != ModeLog {
		return fmt.Errorf("select: %w", ErrWrongMode)
	}

	e.mu.Lock()
	found := false
	for _, entry := range e.state.history {
		if entry.ID == id {
			found = true
			break
		}
	}
	if found {
		e.state.selected = id
	}
	e.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	e.notify()
	return nil
}

func (e *Engine) run(ctx context.Context, rec *batchRecord,
	progressCh chan types.ProgressItem, handle *BatchHandle) {

	resultCh := make(chan batchResult, 1)
	go func() {
		summary, err := e.transport.GenerateBatch(ctx, rec.id, rec.request)
		resultCh <- batchResult{summary: summary, err: err}
	}()

	subscribed := progressCh != nil
	unsubscribe := func() {
		if subscribed {
			e.transport.UnsubscribeProgress(progressCh, rec.id)
			subscribed = false
		}
	}

	items := progressCh
	superseded := rec.superseded
	var res batchResult
loop:
	for {
		select {
		case item, ok := <-items:
			if !ok {
				items = nil
				continue
			}
			e.fold(rec, item)
		case <-superseded:
			rec.log.Debug("batch superseded; releasing progress subscription")
			superseded = nil
			items = nil
			unsubscribe()
		case res = <-resultCh:
			break loop
		}
	}

	// every item is published before the call returns, so whatever is
	// still buffered belongs to this batch
	if items != nil {
	drain:
		for {
			select {
			case item, ok := <-items:
				if !ok {
					break drain
				}
				e.fold(rec, item)
			default:
				break drain
			}
		}
	}

	terr := e.finish(rec, res)
	unsubscribe()
	handle.close(res.summary, terr)
}

func (e *Engine) live(rec *batchRecord) bool {
	if rec.epoch != e.epoch {
		return false
	}
	return !e.reconciler.Exclusive() || rec.generation == e.generation
}

func (e *Engine) fold(rec *batchRecord, item types.ProgressItem) {
	e.mu.Lock()
	if !e.live(rec) {
		e.mu.Unlock()
		rec.log.Debug("stale progress item dropped", "index", item.Index)
		return
	}
	if item.Index < 0 || item.Index >= rec.request.Count {
		e.mu.Unlock()
		rec.log.Warn("progress item index out of range", "index", item.Index,
			"count", rec.request.Count)
		return
	}
	e.reconciler.Fold(&e.state, rec, item)
	e.mu.Unlock()
	e.notify()

	if item.Error != "" {
		rec.log.Debug("item failed", "index", item.Index, "err", item.Error)
	}
}

func (e *Engine) finish(rec *batchRecord, res batchResult) *TransportError {
	var terr *TransportError
	if res.err != nil {
		terr = &TransportError{BatchID: rec.id, Err: res.err}
	}

	e.mu.Lock()
	delete(e.open, rec.id)
	live := e.live(rec)
	unreported := rec.outstanding
	if live {
		if terr != nil {
			e.reconciler.Abandon(&e.state, rec, terr)
		} else {
			e.reconciler.Complete(&e.state, rec)
		}
	}
	e.mu.Unlock()

	switch {
	case !live:
		rec.log.Debug("stale batch outcome dropped", "failed", terr != nil)
		return terr
	case terr != nil:
		rec.log.With("err", res.err).Warn("batch failed",
			"unreported", unreported)
	default:
		rec.log.Info("batch complete", "count", res.summary.Count,
			"mime_type", res.summary.MIMEType)
	}
	e.notify()

	return terr
}

func (e *Engine) notify() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}
