/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package imagegen

import (
	"context"

	"github.com/mikeb26/mojimix/internal/types"
)

// Processor turns one raw model image into its named representations. A
// non-empty warning is advisory and does not fail the item.
type Processor interface {
	Process(ctx context.Context, raw types.Image) (types.Representations,
		string, error)
}

type ProcessorFunc func(ctx context.Context,
	raw types.Image) (types.Representations, string, error)

func (f ProcessorFunc) Process(ctx context.Context,
	raw types.Image) (types.Representations, string, error) {
	return f(ctx, raw)
}

// PassthroughProcessor performs no pixel work: the raw image is offered as
// both the primary and raw renderings and no keyed rendering is produced.
type PassthroughProcessor struct{}

func (PassthroughProcessor) Process(ctx context.Context,
	raw types.Image) (types.Representations, string, error) {

	primary := raw
	return types.Representations{
		types.RepresentationPrimary: &primary,
		types.RepresentationKeyed:   nil,
		types.RepresentationRaw:     &raw,
	}, "", nil
}
