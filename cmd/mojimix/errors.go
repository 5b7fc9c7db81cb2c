/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */

package main

import (
	"fmt"
)

var (
	ErrNoAPIKey = fmt.Errorf("No Gemini API key found. Set GEMINI_API_KEY or run `%v config key`", CommandName)
	ErrNoEmoji  = fmt.Errorf("Please select at least one emoji")
	ErrNoImage  = fmt.Errorf("That result has no image to export")
)
