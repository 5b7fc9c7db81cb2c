/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package export

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/mojimix/internal/types"
	"github.com/stretchr/testify/assert"
)

type fixedSuggester struct {
	name   string
	calls  int
	emojis []string
}

func (f *fixedSuggester) SuggestOrFallback(ctx context.Context,
	emojis []string, modifier string) string {
	f.calls++
	f.emojis = emojis
	return f.name
}

func testImage(data string) *types.Image {
	return &types.Image{
		Base64:   base64.StdEncoding.EncodeToString([]byte(data)),
		MIMEType: "image/png",
	}
}

func TestSaveUsesSuggestedNameAndUniquifies(t *testing.T) {
	dir := t.TempDir()
	sugg := &fixedSuggester{name: "pizza_cat"}
	x := NewExporter(sugg, nil)
	req := Request{
		Image:  testImage("png-1"),
		Emojis: []string{"🐱", "🍕"},
		Dir:    dir,
	}

	path, err := x.Save(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pizza_cat.png"), path)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "png-1", string(data))
	assert.Equal(t, []string{"🐱", "🍕"}, sugg.emojis)

	req.Image = testImage("png-2")
	path, err = x.Save(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pizza_cat_2.png"), path)
	data, err = os.ReadFile(filepath.Join(dir, "pizza_cat.png"))
	assert.NoError(t, err)
	assert.Equal(t, "png-1", string(data))
	assert.Equal(t, 2, sugg.calls)
}

func TestSaveExplicitNameSkipsSuggester(t *testing.T) {
	dir := t.TempDir()
	sugg := &fixedSuggester{name: "unused"}
	x := NewExporter(sugg, nil)

	path, err := x.Save(context.Background(), Request{
		Image: &types.Image{
			Base64:   base64.StdEncoding.EncodeToString([]byte("jpg")),
			MIMEType: "image/jpeg",
		},
		Dir:  filepath.Join(dir, "nested"),
		Name: "My Emoji",
	})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "my_emoji.jpg"), path)
	assert.Equal(t, 0, sugg.calls)
}

func TestSaveWithoutSuggesterFallsBack(t *testing.T) {
	dir := t.TempDir()
	x := NewExporter(nil, nil)

	path, err := x.Save(context.Background(), Request{
		Image:  testImage("x"),
		Emojis: []string{"🐱"},
		Dir:    dir,
	})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "emoji_1f431.png"), path)
}

func TestSaveRejectsBadInput(t *testing.T) {
	x := NewExporter(nil, nil)

	_, err := x.Save(context.Background(), Request{Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = x.Save(context.Background(), Request{
		Image: &types.Image{Base64: "!!not base64!!"},
		Dir:   t.TempDir(),
	})
	assert.ErrorContains(t, err, "Failed to decode image")
}

func TestCopy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	defer func() { writeClipboard = orig }()

	x := NewExporter(nil, nil)
	img := testImage("png")
	assert.NoError(t, x.Copy(context.Background(), Request{Image: img}))
	assert.Equal(t, img.Base64, copied)

	assert.ErrorIs(t, x.Copy(context.Background(), Request{}), ErrNoImage)

	writeClipboard = func(text string) error {
		return errors.New("no clipboard utility")
	}
	err := x.Copy(context.Background(), Request{Image: img})
	assert.ErrorContains(t, err, "no clipboard utility")
}
