/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid generation request")
	// ErrNotFound is returned when selecting an unknown history entry.
	ErrNotFound = errors.New("history entry not found")
	// ErrWrongMode is returned for operations the active reconciler does not
	// support.
	ErrWrongMode = errors.New("operation not supported in this mode")
)

// ValidationError is returned synchronously by Dispatch when a request is
// rejected. A rejected request never reaches the transport and does not
// change the view.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v %v", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransportError wraps a batch-level failure of the transport call. Its
// message is what the view reports as LastError.
type TransportError struct {
	BatchID string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "generation failed"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
