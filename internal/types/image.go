/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package types

import "maps"

// Image is an opaque base64 encoded image blob. Its pixel content is never
// inspected outside of post-processing.
type Image struct {
	Base64   string
	MIMEType string
}

// RepresentationName identifies one rendering of a generated item.
type RepresentationName string

const (
	// RepresentationPrimary is the background-removed (flood filled) form.
	RepresentationPrimary RepresentationName = "primary"
	// RepresentationKeyed is the color-keyed alternate form.
	RepresentationKeyed RepresentationName = "keyed"
	// RepresentationRaw is the unprocessed model output.
	RepresentationRaw RepresentationName = "raw"
)

// preference order used by Preferred()
var representationOrder = []RepresentationName{
	RepresentationPrimary,
	RepresentationKeyed,
	RepresentationRaw,
}

// Representations is the set of named renderings of one item. A nil value
// for a name means post-processing could not produce that rendering.
type Representations map[RepresentationName]*Image

// Any reports whether at least one non-nil rendering is present.
func (r Representations) Any() bool {
	for _, img := range r {
		if img != nil {
			return true
		}
	}
	return false
}

func (r Representations) Get(name RepresentationName) *Image {
	if r == nil {
		return nil
	}
	return r[name]
}

// Preferred returns the first available rendering in primary, keyed, raw
// order and its name.
func (r Representations) Preferred() (RepresentationName, *Image) {
	for _, name := range representationOrder {
		if img := r.Get(name); img != nil {
			return name, img
		}
	}
	for name, img := range r {
		if img != nil {
			return name, img
		}
	}
	return "", nil
}

// Clone copies the map and the images it points at.
func (r Representations) Clone() Representations {
	if r == nil {
		return nil
	}
	out := maps.Clone(r)
	for name, img := range out {
		if img != nil {
			cp := *img
			out[name] = &cp
		}
	}
	return out
}
