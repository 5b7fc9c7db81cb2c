/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/mikeb26/mojimix/internal/prompts"
	"github.com/mikeb26/mojimix/internal/types"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

const (
	ModelNameFast = "gemini-2.5-flash-image"
	ModelNamePro  = "gemini-3-pro-image-preview"

	DefaultMIMEType = "image/png"
	aspectRatio     = "1:1"
)

var (
	ErrNoImage            = errors.New("no image found in response")
	ErrSubscriberTooSmall = errors.New("imagegen: progress subscriber too small")
)

func ModelName(m types.Model) string {
	if m == types.ModelPro {
		return ModelNamePro
	}
	return ModelNameFast
}

// GenerateBatch issues req.Count generation calls and publishes one
// ProgressItem per index to the batch's subscribers as each call
// completes. Per-item failures are published as item errors; the call
// itself fails only when the whole batch cannot proceed.
func (client *Client) GenerateBatch(ctx context.Context, batchID string,
	req types.GenerationRequest) (types.BatchSummary, error) {

	if len(req.Emojis) == 0 {
		return types.BatchSummary{}, errors.New("imagegen: no emojis in request")
	}
	if req.Count <= 0 {
		return types.BatchSummary{}, fmt.Errorf("imagegen: invalid count %v",
			req.Count)
	}
	if err := client.checkSubscribers(batchID, req.Count); err != nil {
		return types.BatchSummary{}, err
	}
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	log := client.log.With("batch", batchID)
	prompt := prompts.EmojiPrompt(req.Emojis, req.TrimmedModifier())
	model := ModelName(req.Model)
	log.Debug("generating batch", "model", model, "count", req.Count)

	var mimeOnce sync.Once
	mimeType := DefaultMIMEType

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(client.concurrency)
	for ii := 0; ii < req.Count; ii++ {
		g.Go(func() error {
			item, err := client.generateItem(gctx, model, prompt, ii)
			if err != nil {
				return err
			}
			if item.Succeeded() {
				mimeOnce.Do(func() {
					_, img := item.Representations.Preferred()
					if img.MIMEType != "" {
						mimeType = img.MIMEType
					}
				})
			} else {
				log.Warn("item failed", "index", ii, "err", item.Error)
			}
			client.publishProgress(batchID, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return types.BatchSummary{}, err
	}

	return types.BatchSummary{Count: req.Count, MIMEType: mimeType}, nil
}

// generateItem returns a non-nil error only for failures that should abort
// the whole batch.
func (client *Client) generateItem(ctx context.Context, model string,
	prompt string, index int) (types.ProgressItem, error) {

	resp, err := client.models.GenerateContent(ctx, model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig: &genai.ImageConfig{
				AspectRatio: aspectRatio,
			},
		})
	if err != nil {
		if isBatchFatal(ctx, err) {
			return types.ProgressItem{}, err
		}
		return types.ProgressItem{Index: index, Error: err.Error()}, nil
	}

	raw, err := firstImage(resp)
	if err != nil {
		return types.ProgressItem{Index: index, Error: err.Error()}, nil
	}

	reps, warning, err := client.processor.Process(ctx, raw)
	if err != nil {
		return types.ProgressItem{
			Index: index,
			Error: fmt.Sprintf("post-processing failed: %v", err),
		}, nil
	}

	return types.ProgressItem{
		Index:           index,
		Representations: reps,
		Warning:         warning,
	}, nil
}

// isBatchFatal reports whether err means no later call in the batch can
// succeed either: the batch context is done or the credentials were
// refused.
func isBatchFatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.Code
	} else if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		code = apiErrPtr.Code
	}

	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func firstImage(resp *genai.GenerateContentResponse) (types.Image, error) {
	if resp == nil {
		return types.Image{}, ErrNoImage
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if !strings.HasPrefix(part.InlineData.MIMEType, "image/") ||
				len(part.InlineData.Data) == 0 {
				continue
			}
			return types.Image{
				Base64:   base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MIMEType: part.InlineData.MIMEType,
			}, nil
		}
	}

	return types.Image{}, ErrNoImage
}
