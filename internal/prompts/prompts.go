/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed emoji_msg.txt
var EmojiMsgFmt string

const ModifierMsgFmt = "%s Additional modification: %s"

const FilenameMsgFmt = `Generate a short filename (2-4 words, snake_case, no extension) for an emoji that combines: %s. Reply with ONLY the filename, nothing else.`

const FilenameStyleMsgFmt = `Generate a short filename (2-4 words, snake_case, no extension) for an emoji that combines: %s with style: %s. Reply with ONLY the filename, nothing else.`

// EmojiPrompt builds the image generation prompt for combining the given
// glyphs.
func EmojiPrompt(emojis []string, modifier string) string {
	msg := fmt.Sprintf(strings.TrimSpace(EmojiMsgFmt), strings.Join(emojis, " "))
	modifier = strings.TrimSpace(modifier)
	if modifier == "" {
		return msg
	}

	return fmt.Sprintf(ModifierMsgFmt, msg, modifier)
}

func FilenamePrompt(emojis []string, modifier string) string {
	emojiStr := strings.Join(emojis, " ")
	modifier = strings.TrimSpace(modifier)
	if modifier == "" {
		return fmt.Sprintf(FilenameMsgFmt, emojiStr)
	}

	return fmt.Sprintf(FilenameStyleMsgFmt, emojiStr, modifier)
}
