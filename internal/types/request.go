/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package types

import (
	"fmt"
	"slices"
	"strings"
)

// Model selects which image model backs a batch.
type Model string

const (
	ModelFast Model = "fast"
	ModelPro  Model = "pro"
)

var modelLabels = map[Model]string{
	ModelFast: "Nano Banana",
	ModelPro:  "Nano Banana Pro",
}

// ParseModel accepts the case-insensitive names "fast" and "pro".
func ParseModel(s string) (Model, error) {
	m := Model(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modelLabels[m]; !ok {
		return "", fmt.Errorf("unknown model %q; want %v or %v", s,
			ModelFast, ModelPro)
	}

	return m, nil
}

func (m Model) Valid() bool {
	_, ok := modelLabels[m]
	return ok
}

// Label is the human readable model name recorded on history entries.
func (m Model) Label() string {
	if l, ok := modelLabels[m]; ok {
		return l
	}
	return string(m)
}

// GenerationRequest is one user request for Count images combining Emojis.
type GenerationRequest struct {
	Emojis   []string
	Modifier string
	Model    Model
	Count    int
}

// Clone returns a copy that shares no mutable state with req.
func (req GenerationRequest) Clone() GenerationRequest {
	req.Emojis = slices.Clone(req.Emojis)
	return req
}

// TrimmedModifier returns the modifier with surrounding whitespace removed.
func (req GenerationRequest) TrimmedModifier() string {
	return strings.TrimSpace(req.Modifier)
}
