package history

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/studiowebux/doh/internal/entry"
	"github.com/studiowebux/doh/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("196"))
)

// Render formats entries as a table for the terminal
func Render(entries []types.Transfer) string {
	if len(entries) == 0 {
		return "No transfers recorded"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format(entry.TimestampLayout),
			string(e.Operation),
			e.URL,
			e.LocalPath,
			outcome(e),
			sizeCell(e),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WHEN", "OPERATION", "URL", "LOCAL", "RESULT", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 && row >= 0 && row < len(entries) && !entries[row].Succeeded() {
				return failStyle
			}
			return cellStyle
		})

	return t.Render()
}

func outcome(e types.Transfer) string {
	if e.Error != "" {
		return e.Error
	}
	if e.StatusText != "" {
		return e.StatusText
	}
	return strconv.Itoa(e.Status)
}

func sizeCell(e types.Transfer) string {
	if e.Bytes <= 0 {
		return ""
	}
	return fmt.Sprintf("%s in %dms", entry.HumanReadableSize(uint64(e.Bytes)), e.DurationMs)
}
