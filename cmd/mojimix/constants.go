/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"github.com/mikeb26/mojimix/internal/config"
)

const CommandName = config.CommandName

const DevVersionText = "v0.devbuild"

// env vars consulted for the filename suggestion model when it is not a
// Gemini model
var NamerKeyEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

const (
	cmdPrefix = ":"
	// separates the glyphs from the modifier on a session line
	modifierSep = "|"
)
