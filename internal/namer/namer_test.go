/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package namer

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

type fakeChatModel struct {
	reply string
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message,
	opts ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message,
	opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestSuggest(t *testing.T) {
	cm := &fakeChatModel{reply: "  pizza_cat.png\n"}
	n := NewWithModel(cm, nil)

	name, err := n.Suggest(context.Background(), []string{"🐱", "🍕"}, "neon")
	assert.NoError(t, err)
	assert.Equal(t, "pizza_cat", name)
	if assert.Len(t, cm.input, 1) {
		assert.Equal(t, schema.User, cm.input[0].Role)
		assert.Contains(t, cm.input[0].Content, "combines: 🐱 🍕 with style: neon.")
	}
}

func TestSuggestErrors(t *testing.T) {
	n := NewWithModel(&fakeChatModel{err: errors.New("boom")}, nil)
	_, err := n.Suggest(context.Background(), []string{"🐱"}, "")
	assert.ErrorContains(t, err, "boom")

	n = NewWithModel(&fakeChatModel{reply: "🙂🙂"}, nil)
	_, err = n.Suggest(context.Background(), []string{"🐱"}, "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSuggestOrFallback(t *testing.T) {
	n := NewWithModel(&fakeChatModel{err: errors.New("quota")}, nil)
	assert.Equal(t, "emoji_party_hat",
		n.SuggestOrFallback(context.Background(), []string{"🐱"}, "Party Hat"))

	n = NewWithModel(&fakeChatModel{reply: "happy_cat"}, nil)
	assert.Equal(t, "happy_cat",
		n.SuggestOrFallback(context.Background(), []string{"🐱"}, ""))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pizza_cat", "pizza_cat"},
		{"Pizza Cat", "pizza_cat"},
		{"`pizza-cat`", "pizza_cat"},
		{"\"fire  dragon\".png", "fire_dragon"},
		{"__a__b__", "a_b"},
		{"cat\nsecond line", "cat"},
		{"héllo wörld", "hllo_wrld"},
		{"", ""},
		{"🙂", ""},
		{"mr. whiskers", "mr_whiskers"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "input %q", tt.in)
	}

	long := Sanitize("one two three four five six seven eight nine ten eleven")
	assert.LessOrEqual(t, len(long), MaxNameLen)
	assert.NotEqual(t, byte('_'), long[len(long)-1])
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "emoji_1f431_1f355", FallbackName([]string{"🐱", "🍕"}, ""))
	assert.Equal(t, "emoji_2764", FallbackName([]string{"❤️"}, "  "))
	assert.Equal(t, "emoji_neon", FallbackName([]string{"🐱"}, "neon!"))
	assert.Equal(t, "emoji", FallbackName(nil, ""))
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{APIKey: "k", Vendor: "acme",
		Model: "m"})
	assert.ErrorContains(t, err, "unsupported vendor")

	_, err = New(context.Background(), Config{APIKey: "k",
		Vendor: VendorOpenAI})
	assert.ErrorContains(t, err, "model is required")
}
