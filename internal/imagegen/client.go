/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikeb26/mojimix/internal/types"
	"google.golang.org/genai"
	"pkt.systems/pslog"
)

const DefaultConcurrency = 4

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey string
	// Concurrency bounds the number of in-flight generation calls per
	// batch.
	Concurrency int
	// Timeout bounds one whole batch; zero means no limit.
	Timeout   time.Duration
	Processor Processor
	Logger    pslog.Logger
}

// Client is a types.Transport backed by the Gemini image models.
type Client struct {
	models      contentGenerator
	processor   Processor
	concurrency int
	timeout     time.Duration
	log         pslog.Logger

	subsMu sync.RWMutex
	subs   map[string][]chan types.ProgressItem //index by batchID
}

var _ types.Transport = (*Client)(nil)

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("imagegen: API key must not be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return newClient(client.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Processor == nil {
		cfg.Processor = PassthroughProcessor{}
	}
	if cfg.Logger == nil {
		cfg.Logger = pslog.Ctx(context.Background())
	}

	return &Client{
		models:      models,
		processor:   cfg.Processor,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		log:         cfg.Logger,
		subs:        make(map[string][]chan types.ProgressItem),
	}
}

// SubscribeProgress registers a subscriber for the progress items of the
// given batch ID.
//
// The returned channel is buffered to depth, which must be at least the
// Count of the batch that will be generated under batchID; GenerateBatch
// rejects a batch with ErrSubscriberTooSmall rather than drop items on an
// undersized subscriber. It is the caller's responsibility to call
// UnsubscribeProgress() when no longer required.
func (client *Client) SubscribeProgress(batchID string,
	depth int) chan types.ProgressItem {

	if batchID == "" {
		return nil
	}
	if depth < 1 {
		depth = 1
	}
	ch := make(chan types.ProgressItem, depth)

	client.subsMu.Lock()
	client.subs[batchID] = append(client.subs[batchID], ch)
	client.subsMu.Unlock()

	return ch
}

// UnsubscribeProgress unregisters a subscriber from a previously subscribed
// batchID and closes its channel.
func (client *Client) UnsubscribeProgress(ch chan types.ProgressItem,
	batchID string) {

	client.subsMu.Lock()
	defer client.subsMu.Unlock()

	subs := client.subs[batchID]
	for i := range subs {
		if subs[i] == ch {
			subs = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(subs) == 0 {
		delete(client.subs, batchID)
	} else {
		client.subs[batchID] = subs
	}
}

// checkSubscribers reports ErrSubscriberTooSmall if any subscriber of
// batchID cannot buffer count items.
func (client *Client) checkSubscribers(batchID string, count int) error {
	client.subsMu.RLock()
	defer client.subsMu.RUnlock()

	for _, ch := range client.subs[batchID] {
		if cap(ch) < count {
			return fmt.Errorf("%w: depth %v < count %v", ErrSubscriberTooSmall,
				cap(ch), count)
		}
	}
	return nil
}

func (client *Client) publishProgress(batchID string, item types.ProgressItem) {
	// hold the read lock across the sends so that Unsubscribe cannot close
	// a channel mid-send
	client.subsMu.RLock()
	defer client.subsMu.RUnlock()

	for _, ch := range client.subs[batchID] {
		select {
		case ch <- item:
		default:
			client.log.With("batch", batchID).Warn(
				"progress subscriber full; item dropped", "index", item.Index)
		}
	}
}
