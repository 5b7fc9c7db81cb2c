/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mikeb26/mojimix/internal/types"
)

// scriptedTransport hands every GenerateBatch call to the test, which then
// decides which items to publish and how the call settles.
type scriptedTransport struct {
	mu           sync.Mutex
	subs         map[string]chan types.ProgressItem
	unsubscribed map[string]int
	calls        chan *scriptedCall
}

type scriptedCall struct {
	batchID string
	req     types.GenerationRequest
	t       *scriptedTransport
	settle  chan batchResult
}

func newScriptedTransport() *scriptedTransport {
	return &scriptedTransport{
		subs:         make(map[string]chan types.ProgressItem),
		unsubscribed: make(map[string]int),
		calls:        make(chan *scriptedCall, 16),
	}
}

func (st *scriptedTransport) SubscribeProgress(batchID string,
	depth int) chan types.ProgressItem {

	// extra room for redelivery tests
	ch := make(chan types.ProgressItem, depth*2)
	st.mu.Lock()
	st.subs[batchID] = ch
	st.mu.Unlock()
	return ch
}

func (st *scriptedTransport) UnsubscribeProgress(ch chan types.ProgressItem,
	batchID string) {

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.subs[batchID] == ch {
		delete(st.subs, batchID)
		close(ch)
	}
	st.unsubscribed[batchID]++
}

func (st *scriptedTransport) GenerateBatch(ctx context.Context, batchID string,
	req types.GenerationRequest) (types.BatchSummary, error) {

	c := &scriptedCall{batchID: batchID, req: req, t: st,
		settle: make(chan batchResult, 1)}
	st.calls <- c
	select {
	case <-ctx.Done():
		return types.BatchSummary{}, ctx.Err()
	case res := <-c.settle:
		return res.summary, res.err
	}
}

func (st *scriptedTransport) unsubscribeCount(batchID string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.unsubscribed[batchID]
}

func (st *scriptedTransport) next(t *testing.T) *scriptedCall {
	t.Helper()
	select {
	case c := <-st.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for transport call")
		return nil
	}
}

// emit publishes items in order. It is a no-op once the engine has released
// the subscription.
func (c *scriptedCall) emit(items ...types.ProgressItem) {
	c.t.mu.Lock()
	defer c.t.mu.Unlock()
	ch, ok := c.t.subs[c.batchID]
	if !ok {
		return
	}
	for _, item := range items {
		ch <- item
	}
}

func (c *scriptedCall) resolve() {
	c.settle <- batchResult{summary: types.BatchSummary{Count: c.req.Count,
		MIMEType: "image/png"}}
}

func (c *scriptedCall) reject(err error) {
	c.settle <- batchResult{err: err}
}

func okItem(index int) types.ProgressItem {
	img := &types.Image{Base64: fmt.Sprintf("aW1n%d", index),
		MIMEType: "image/png"}
	return types.ProgressItem{
		Index: index,
		Representations: types.Representations{
			types.RepresentationPrimary: img,
			types.RepresentationKeyed:   nil,
		},
	}
}

func failedItem(index int, msg string) types.ProgressItem {
	return types.ProgressItem{Index: index, Error: msg}
}

func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%v-%d", prefix, n)
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}
