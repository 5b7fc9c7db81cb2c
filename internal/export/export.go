/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/mikeb26/mojimix/internal/namer"
	"github.com/mikeb26/mojimix/internal/types"
	"pkt.systems/pslog"
)

// maximum number of _N suffixes tried before giving up on a name
const maxUniqueAttempts = 1000

var writeClipboard = clipboard.WriteAll

var ErrNoImage = errors.New("nothing to export: item has no image")

// Suggester picks a base filename; *namer.Namer satisfies it.
type Suggester interface {
	SuggestOrFallback(ctx context.Context, emojis []string,
		modifier string) string
}

// Request is what the view hands to an export action: one blob plus the
// request metadata it was generated from.
type Request struct {
	Image    *types.Image
	Emojis   []string
	Modifier string
	Dir      string
	// Name overrides the suggested base filename when set.
	Name string
}

type Exporter struct {
	suggester Suggester
	log       pslog.Logger
}

func NewExporter(suggester Suggester, log pslog.Logger) *Exporter {
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Exporter{
		suggester: suggester,
		log:       log,
	}
}

// Save decodes the blob and writes it to a new file under req.Dir, never
// overwriting an existing one. It returns the path written.
func (x *Exporter) Save(ctx context.Context, req Request) (string, error) {
	if req.Image == nil || req.Image.Base64 == "" {
		return "", ErrNoImage
	}
	data, err := base64.StdEncoding.DecodeString(req.Image.Base64)
	if err != nil {
		return "", fmt.Errorf("Failed to decode image: %w", err)
	}

	name := namer.Sanitize(req.Name)
	if name == "" {
		if x.suggester != nil {
			name = x.suggester.SuggestOrFallback(ctx, req.Emojis, req.Modifier)
		} else {
			name = namer.FallbackName(req.Emojis, req.Modifier)
		}
	}
	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Failed to create %v: %w", dir, err)
	}

	ext := extension(req.Image.MIMEType)
	for ii := 1; ii <= maxUniqueAttempts; ii++ {
		fileName := name + ext
		if ii > 1 {
			fileName = fmt.Sprintf("%v_%d%v", name, ii, ext)
		}
		path := filepath.Join(dir, fileName)
		err = writeNew(path, data)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("Failed to save file: %w", err)
		}
		x.log.Info("saved emoji", "path", path, "bytes", len(data))
		return path, nil
	}

	return "", fmt.Errorf("Failed to save file: no free name for %v%v in %v",
		name, ext, dir)
}

// Copy places the base64 blob on the system clipboard.
func (x *Exporter) Copy(ctx context.Context, req Request) error {
	if req.Image == nil || req.Image.Base64 == "" {
		return ErrNoImage
	}
	if err := writeClipboard(req.Image.Base64); err != nil {
		return fmt.Errorf("Failed to copy to clipboard: %w", err)
	}
	x.log.Debug("copied emoji to clipboard", "bytes", len(req.Image.Base64))
	return nil
}

func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
