/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/types"
	"github.com/spf13/cobra"
)

const sessionHelp = `enter emoji separated by spaces, optionally followed by | and a style
modifier, e.g. "🐱 🍕 | wearing a chef hat". Each line starts a new batch.
commands:
  :select N      select history entry N
  :save [N]      save entry N (default: the selection)
  :copy [N]      copy entry N (default: the selection) to the clipboard
  :model fast|pro
  :count N
  :clear         clear the history
  :help
  :quit`

// how often an idle session re-checks whether open batches have closed
const settlePollInterval = 100 * time.Millisecond

type sessionOptions struct {
	model string
	count int
}

func newSessionCmd(root *rootOptions) *cobra.Command {
	opts := &sessionOptions{}
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactively generate emoji, keeping a history of results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, err := loadConfig(root)
			if err != nil {
				return err
			}
			req, err := buildRequest(cfg, nil, "", opts.model, opts.count)
			if err != nil {
				return err
			}
			app, err := NewApp(ctx, cfg, store, batch.ModeLog,
				cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return newSession(app, req.Model, req.Count).run(ctx,
				cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", "", "model to use: fast or pro")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0,
		"number of variations per line")

	return cmd
}

type session struct {
	app   *App
	model types.Model
	count int

	// what has already been written to out
	printedEpoch uint64
	printed      int
	lastStatus   string
}

func newSession(app *App, model types.Model, count int) *session {
	return &session{
		app:   app,
		model: model,
		count: count,
	}
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.app.out, format, args...)
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	s.printf("%v\n", sessionHelp)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.app.engine.Changes():
			s.printUpdates()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return err
					}
				default:
				}
				s.settle(ctx)
				return nil
			}
			quit, err := s.handleLine(ctx, line)
			if err != nil {
				s.printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// settle waits for every open batch to close, printing as results
// arrive.
func (s *session) settle(ctx context.Context) {
	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()

	for s.app.engine.OpenBatches() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-s.app.engine.Changes():
			s.printUpdates()
		case <-ticker.C:
		}
	}
	s.printUpdates()
}

func (s *session) handleLine(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, cmdPrefix) {
		return false, s.dispatch(ctx, line)
	}

	fields := strings.Fields(strings.TrimPrefix(line, cmdPrefix))
	if len(fields) == 0 {
		return false, nil
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		s.printf("%v\n", sessionHelp)
	case "clear":
		s.app.engine.ClearAll()
		s.printUpdates()
		s.printf("history cleared\n")
	case "select":
		entry, err := s.entry(arg)
		if err != nil {
			return false, err
		}
		return false, s.app.engine.Select(entry.ID)
	case "save":
		entry, err := s.entry(arg)
		if err != nil {
			return false, err
		}
		req, err := s.app.exportRequest(entry.Representations, entry.Emojis,
			entry.Modifier)
		if err != nil {
			return false, err
		}
		path, err := s.app.exporter.Save(ctx, req)
		if err != nil {
			return false, err
		}
		s.printf("saved to %v\n", path)
	case "copy":
		entry, err := s.entry(arg)
		if err != nil {
			return false, err
		}
		req, err := s.app.exportRequest(entry.Representations, entry.Emojis,
			entry.Modifier)
		if err != nil {
			return false, err
		}
		if err := s.app.exporter.Copy(ctx, req); err != nil {
			return false, err
		}
		s.printf("copied to clipboard\n")
	case "model":
		model, err := types.ParseModel(arg)
		if err != nil {
			return false, err
		}
		s.model = model
		s.printf("using %v\n", model.Label())
	case "count":
		count, err := strconv.Atoi(arg)
		if err != nil || count <= 0 {
			return false, fmt.Errorf("count must be a positive number")
		}
		s.count = count
	default:
		return false, fmt.Errorf("unknown command %q; try :help", fields[0])
	}

	return false, nil
}

func (s *session) dispatch(ctx context.Context, line string) error {
	emojis, modifier := parseSessionLine(line)
	handle, err := s.app.engine.Dispatch(ctx, types.GenerationRequest{
		Emojis:   emojis,
		Modifier: modifier,
		Model:    s.model,
		Count:    s.count,
	})
	if err != nil {
		return userError(err)
	}
	s.printf("generating %d × %v\n", handle.Request.Count,
		strings.Join(handle.Request.Emojis, " "))
	return nil
}

// entry resolves a 1-based history number, or the current selection when
// arg is empty.
func (s *session) entry(arg string) (batch.HistoryEntry, error) {
	view := s.app.engine.Snapshot()
	if arg == "" {
		entry, ok := view.Selected()
		if !ok {
			return batch.HistoryEntry{}, fmt.Errorf("nothing is selected")
		}
		return entry, nil
	}
	num, err := strconv.Atoi(arg)
	if err != nil || num < 1 || num > len(view.History) {
		return batch.HistoryEntry{}, fmt.Errorf("no history entry %q", arg)
	}
	return view.History[num-1], nil
}

// printUpdates writes history entries that arrived since the last call and
// the status line when it changed.
func (s *session) printUpdates() {
	view := s.app.engine.Snapshot()
	if view.Epoch != s.printedEpoch {
		s.printedEpoch = view.Epoch
		s.printed = 0
	}
	for ii := s.printed; ii < len(view.History); ii++ {
		entry := view.History[ii]
		s.printf("%v\n", s.app.renderer.Entry(ii+1, entry,
			entry.ID == view.SelectedID))
	}
	s.printed = len(view.History)

	status := s.app.renderer.Status(view)
	if view.LastError != "" {
		status += "  error: " + view.LastError
	}
	if status != s.lastStatus {
		s.lastStatus = status
		s.printf("%v\n", status)
	}
}

func parseSessionLine(line string) ([]string, string) {
	glyphs, modifier, _ := strings.Cut(line, modifierSep)
	return strings.Fields(glyphs), strings.TrimSpace(modifier)
}
