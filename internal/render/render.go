/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/types"
	"golang.org/x/term"
)

const (
	DefaultWidth = 80
	minCellWidth = 22
)

// Renderer draws a batch.View as terminal text.
type Renderer struct {
	styles Styles
	width  int
}

func NewRenderer(styles Styles, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{
		styles: styles,
		width:  width,
	}
}

// TerminalWidth returns the width of the terminal on fd, or DefaultWidth
// when fd is not a terminal.
func TerminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

func (r *Renderer) View(v batch.View) string {
	var sb strings.Builder

	sb.WriteString(r.header(v))
	sb.WriteString("\n")
	if v.LastError != "" {
		sb.WriteString(r.styles.Banner.Render("error: " + v.LastError))
		sb.WriteString("\n")
	}

	switch v.Mode {
	case batch.ModeIndexed:
		sb.WriteString(r.Slots(v.Slots))
	case batch.ModeLog:
		sb.WriteString(r.History(v))
	}

	return sb.String()
}

func (r *Renderer) header(v batch.View) string {
	title := r.styles.Title.Render("mojimix")
	ok, failed := v.Counts()
	status := fmt.Sprintf("%v mode · %d ok · %d failed", v.Mode, ok, failed)
	if v.IsLoading() {
		status += " · generating"
		if v.Mode == batch.ModeLog {
			status += fmt.Sprintf(" (%d pending)", v.PendingCount)
		}
	}
	return title + "  " + r.styles.Dim.Render(status)
}

// Slots lays the indexed grid out in as many columns as fit the width.
func (r *Renderer) Slots(slots []batch.Slot) string {
	if len(slots) == 0 {
		return r.styles.Dim.Render("no emoji yet") + "\n"
	}

	cellWidth := minCellWidth
	perRow := r.width / (cellWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for ii, slot := range slots {
		row = append(row, r.styles.Cell.Width(cellWidth).Render(r.SlotLine(ii, slot)))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// SlotLine renders one indexed slot; index is 0-based.
func (r *Renderer) SlotLine(index int, slot batch.Slot) string {
	label := fmt.Sprintf("#%d ", index+1)
	switch slot.Status {
	case batch.SlotLoading:
		return label + r.styles.Dim.Render("generating…")
	case batch.SlotSuccess:
		text := label + r.styles.Success.Render("✓ "+describe(slot.Representations))
		if slot.Warning != "" {
			text += "\n" + r.styles.Warning.Render("! "+slot.Warning)
		}
		return text
	case batch.SlotError:
		return label + r.styles.Error.Render("✗ "+slot.Error)
	default:
		return label + r.styles.Dim.Render(string(slot.Status))
	}
}

// History lists entries newest first so the latest arrivals stay visible.
func (r *Renderer) History(v batch.View) string {
	if len(v.History) == 0 {
		return r.styles.Dim.Render("history is empty") + "\n"
	}

	var sb strings.Builder
	for ii := len(v.History) - 1; ii >= 0; ii-- {
		sb.WriteString(r.Entry(ii+1, v.History[ii], v.History[ii].ID == v.SelectedID))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Entry renders one history line; num is the 1-based position shown to the
// user.
func (r *Renderer) Entry(num int, entry batch.HistoryEntry, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	line := fmt.Sprintf("%v%3d  %v", marker, num, strings.Join(entry.Emojis, ""))
	if entry.Modifier != "" {
		line += " \"" + entry.Modifier + "\""
	}
	line += "  " + r.styles.Dim.Render(entry.ModelLabel)
	if entry.Succeeded() {
		line += "  " + r.styles.Success.Render("✓ "+describe(entry.Representations))
		if entry.Warning != "" {
			line += "  " + r.styles.Warning.Render("! "+entry.Warning)
		}
	} else {
		line += "  " + r.styles.Error.Render("✗ "+entry.Error)
	}
	if selected {
		line = r.styles.Selected.Render(line)
	}
	return line
}

// Status is the one line summary printed between updates.
func (r *Renderer) Status(v batch.View) string {
	return r.header(v)
}

// describe names the preferred rendering and its decoded size.
func describe(reps types.Representations) string {
	name, img := reps.Preferred()
	if img == nil {
		return "empty"
	}
	size := uint64(len(img.Base64)) * 3 / 4
	return fmt.Sprintf("%v %v", name, humanize.Bytes(size))
}
