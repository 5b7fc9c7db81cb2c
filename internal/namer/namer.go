/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package namer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	laclopenai "github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/mikeb26/mojimix/internal/prompts"
	"google.golang.org/genai"
	"pkt.systems/pslog"
)

const (
	VendorGoogle    = "google"
	VendorOpenAI    = "openai"
	VendorAnthropic = "anthropic"

	DefaultVendor = VendorGoogle
	DefaultModel  = "gemini-2.0-flash"

	// names longer than this are truncated at a word boundary
	MaxNameLen = 48
	fallback   = "emoji"
)

var ErrEmptyName = errors.New("model returned no usable filename")

type Config struct {
	Vendor string
	Model  string
	APIKey string
	Logger pslog.Logger
}

// Namer suggests short snake_case filenames for generated emoji.
type Namer struct {
	chatModel model.BaseChatModel
	opts      []model.Option
	log       pslog.Logger
}

func New(ctx context.Context, cfg Config) (*Namer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("namer: API key must not be empty")
	}
	if cfg.Vendor == "" {
		cfg.Vendor = DefaultVendor
	}
	if cfg.Model == "" {
		if cfg.Vendor != DefaultVendor {
			return nil, fmt.Errorf("namer: a model is required for vendor %v",
				cfg.Vendor)
		}
		cfg.Model = DefaultModel
	}

	var chatModel model.BaseChatModel
	var opts []model.Option
	var err error
	switch cfg.Vendor {
	case VendorOpenAI:
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:  cfg.Model,
			APIKey: cfg.APIKey,
		})
		opts = append(opts,
			laclopenai.WithReasoningEffort(laclopenai.ReasoningEffortLevelLow))
	case VendorAnthropic:
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			Model:     cfg.Model,
			APIKey:    cfg.APIKey,
			MaxTokens: 256,
		})
	case VendorGoogle:
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err == nil {
			chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
				Model:  cfg.Model,
				Client: client,
			})
		}
	default:
		return nil, fmt.Errorf("namer: unsupported vendor %v", cfg.Vendor)
	}
	if err != nil {
		return nil, fmt.Errorf("namer: could not create %v model: %w",
			cfg.Vendor, err)
	}

	n := NewWithModel(chatModel, cfg.Logger)
	n.opts = opts
	return n, nil
}

func NewWithModel(chatModel model.BaseChatModel, log pslog.Logger) *Namer {
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Namer{
		chatModel: chatModel,
		log:       log,
	}
}

// Suggest asks the model for a filename. The returned name is sanitized
// and never empty when err is nil.
func (n *Namer) Suggest(ctx context.Context, emojis []string,
	modifier string) (string, error) {

	msg, err := n.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompts.FilenamePrompt(emojis, modifier)),
	}, n.opts...)
	if err != nil {
		return "", fmt.Errorf("namer: %w", err)
	}
	if msg == nil {
		return "", ErrEmptyName
	}
	name := Sanitize(msg.Content)
	if name == "" {
		return "", ErrEmptyName
	}

	return name, nil
}

// SuggestOrFallback never fails; model errors are logged and FallbackName
// is used instead.
func (n *Namer) SuggestOrFallback(ctx context.Context, emojis []string,
	modifier string) string {

	name, err := n.Suggest(ctx, emojis, modifier)
	if err != nil {
		n.log.Warn("filename suggestion failed; using fallback", "err", err)
		return FallbackName(emojis, modifier)
	}
	return name
}

// Sanitize lowercases s and reduces it to [a-z0-9_], collapsing runs of
// separators and stripping any file extension the model added anyway.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = line
	}
	s = strings.Trim(s, "`\"' ")
	if dot := strings.LastIndexByte(s, '.'); dot > 0 {
		if ext := s[dot+1:]; len(ext) <= 4 && !strings.ContainsRune(ext, ' ') {
			s = s[:dot]
		}
	}

	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.TrimRight(sb.String(), "_")
	if len(out) > MaxNameLen {
		out = out[:MaxNameLen]
		if cut := strings.LastIndexByte(out, '_'); cut > 0 {
			out = out[:cut]
		}
	}

	return out
}

// FallbackName derives a name locally from the modifier, or from the glyph
// code points when the modifier has nothing usable.
func FallbackName(emojis []string, modifier string) string {
	if name := Sanitize(modifier); name != "" {
		return fallback + "_" + name
	}

	var parts []string
	for _, e := range emojis {
		for _, r := range e {
			if r == 0xfe0f || r == 0x200d {
				continue
			}
			parts = append(parts, fmt.Sprintf("%x", r))
		}
	}
	if len(parts) == 0 {
		return fallback
	}

	return Sanitize(fallback + "_" + strings.Join(parts, "_"))
}
