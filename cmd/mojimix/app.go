/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"context"
	"io"
	"os"

	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/config"
	"github.com/mikeb26/mojimix/internal/export"
	"github.com/mikeb26/mojimix/internal/imagegen"
	"github.com/mikeb26/mojimix/internal/keys"
	"github.com/mikeb26/mojimix/internal/namer"
	"github.com/mikeb26/mojimix/internal/render"
	"github.com/mikeb26/mojimix/internal/types"
	"pkt.systems/pslog"
)

// App is the wiring shared by the generation commands.
type App struct {
	cfg      config.Config
	engine   *batch.Engine
	exporter *export.Exporter
	renderer *render.Renderer
	out      io.Writer
}

// overridden in tests
var newTransport = func(ctx context.Context, apiKey string,
	cfg config.Config) (types.Transport, error) {

	return imagegen.NewClient(ctx, imagegen.Config{
		APIKey:      apiKey,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout(),
		Logger:      pslog.Ctx(ctx),
	})
}

var newSuggester = func(ctx context.Context, apiKey string,
	cfg config.Config) export.Suggester {

	log := pslog.Ctx(ctx)
	if envVar, ok := NamerKeyEnvVars[cfg.Namer.Vendor]; ok {
		apiKey = os.Getenv(envVar)
		if apiKey == "" {
			log.Warn("no key for filename suggestions; using fallback names",
				"vendor", cfg.Namer.Vendor, "env", envVar)
			return nil
		}
	}
	n, err := namer.New(ctx, namer.Config{
		Vendor: cfg.Namer.Vendor,
		Model:  cfg.Namer.Model,
		APIKey: apiKey,
		Logger: log,
	})
	if err != nil {
		log.Warn("filename suggestions disabled", "err", err)
		return nil
	}
	return n
}

func loadConfig(opts *rootOptions) (config.Config, *keys.Store, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, keys.NewStore(dir), nil
}

func NewApp(ctx context.Context, cfg config.Config, store *keys.Store,
	mode batch.Mode, out io.Writer) (*App, error) {

	apiKey, _, err := store.Load()
	if err != nil {
		return nil, ErrNoAPIKey
	}
	transport, err := newTransport(ctx, apiKey, cfg)
	if err != nil {
		return nil, err
	}

	log := pslog.Ctx(ctx)
	width := DefaultWidth(out)
	return &App{
		cfg: cfg,
		engine: batch.NewEngine(transport, mode,
			batch.WithMaxCount(cfg.MaxCount),
			batch.WithLogger(log)),
		exporter: export.NewExporter(newSuggester(ctx, apiKey, cfg), log),
		renderer: render.NewRenderer(render.NewStyles(render.DefaultTheme),
			width),
		out: out,
	}, nil
}

// DefaultWidth is the terminal width when out is a terminal.
func DefaultWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		return render.TerminalWidth(int(f.Fd()))
	}
	return render.DefaultWidth
}

func (app *App) exportRequest(reps types.Representations, emojis []string,
	modifier string) (export.Request, error) {

	_, img := reps.Preferred()
	if img == nil {
		return export.Request{}, ErrNoImage
	}
	return export.Request{
		Image:    img,
		Emojis:   emojis,
		Modifier: modifier,
		Dir:      app.cfg.OutputDir,
	}, nil
}
