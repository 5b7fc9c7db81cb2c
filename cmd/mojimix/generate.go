/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/config"
	"github.com/mikeb26/mojimix/internal/types"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	model    string
	count    int
	modifier string
	outDir   string
	save     bool
	copy     bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:     "generate EMOJI...",
		Aliases: []string{"gen"},
		Short:   "Generate one batch of combined emoji and wait for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.model, "model", "", "model to use: fast or pro")
	flags.IntVarP(&opts.count, "count", "n", 0, "number of variations")
	flags.StringVarP(&opts.modifier, "modifier", "m", "",
		"additional style instructions")
	flags.StringVarP(&opts.outDir, "out", "o", "", "directory for saved files")
	flags.BoolVar(&opts.save, "save", false, "save every successful result")
	flags.BoolVar(&opts.copy, "copy", false,
		"copy the first successful result to the clipboard")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions,
	opts *generateOptions, args []string) error {

	ctx := cmd.Context()
	cfg, store, err := loadConfig(root)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		cfg.OutputDir = opts.outDir
	}
	req, err := buildRequest(cfg, args, opts.modifier, opts.model, opts.count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	app, err := NewApp(ctx, cfg, store, batch.ModeIndexed, out)
	if err != nil {
		return err
	}
	handle, err := app.engine.Dispatch(ctx, req)
	if err != nil {
		return userError(err)
	}
	fmt.Fprintf(out, "generating %d × %v with %v\n", req.Count,
		strings.Join(req.Emojis, " "), req.Model.Label())

	waitErr := app.follow(ctx, handle)
	view := app.engine.Snapshot()
	fmt.Fprint(out, app.renderer.View(view))
	if waitErr != nil {
		return waitErr
	}

	copied := !opts.copy
	for ii, slot := range view.Slots {
		if slot.Status != batch.SlotSuccess {
			continue
		}
		exportReq, err := app.exportRequest(slot.Representations, req.Emojis,
			req.Modifier)
		if err != nil {
			continue
		}
		if opts.save {
			path, err := app.exporter.Save(ctx, exportReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "#%d saved to %v\n", ii+1, path)
		}
		if !copied {
			if err := app.exporter.Copy(ctx, exportReq); err != nil {
				return err
			}
			fmt.Fprintf(out, "#%d copied to clipboard\n", ii+1)
			copied = true
		}
	}

	return nil
}

// follow prints each slot as it settles and returns once the batch closes.
func (app *App) follow(ctx context.Context, handle *batch.BatchHandle) error {
	settled := make(map[int]bool)
	report := func() {
		view := app.engine.Snapshot()
		for ii, slot := range view.Slots {
			if settled[ii] || slot.Status == batch.SlotLoading {
				continue
			}
			settled[ii] = true
			fmt.Fprintln(app.out, app.renderer.SlotLine(ii, slot))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-app.engine.Changes():
			report()
		case <-handle.Done():
			report()
			_, err := handle.Wait(ctx)
			return err
		}
	}
}

func buildRequest(cfg config.Config, args []string, modifier string,
	modelName string, count int) (types.GenerationRequest, error) {

	model := cfg.ParsedModel()
	if modelName != "" {
		var err error
		model, err = types.ParseModel(modelName)
		if err != nil {
			return types.GenerationRequest{}, err
		}
	}
	if count == 0 {
		count = cfg.Count
	}

	return types.GenerationRequest{
		Emojis:   splitEmojis(args),
		Modifier: strings.TrimSpace(modifier),
		Model:    model,
		Count:    count,
	}, nil
}

// splitEmojis accepts glyphs as separate arguments or space separated
// within one argument.
func splitEmojis(args []string) []string {
	var emojis []string
	for _, arg := range args {
		emojis = append(emojis, strings.Fields(arg)...)
	}
	return emojis
}

func userError(err error) error {
	var verr *batch.ValidationError
	if errors.As(err, &verr) && verr.Field == "emojis" {
		return ErrNoEmoji
	}
	return err
}
