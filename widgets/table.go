package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment controls text alignment within a table column.
type Alignment int

const (
	// AlignLeft aligns text to the left (default).
	AlignLeft Alignment = iota
	// AlignRight aligns text to the right.
	AlignRight
	// AlignCenter centers text within the column.
	AlignCenter
)

// Column defines a single table column.
type Column struct {
	// Title is the header text.
	Title string
	// Width is the fixed character width. If 0, auto-calculated from content.
	Width int
	// Align controls text alignment within the column.
	Align Alignment
}

// TableConfig holds the configuration for rendering a table.
type TableConfig struct {
	// Columns defines the table structure.
	Columns []Column
	// Rows is the table data. Each row is a slice of cell strings; cells may
	// carry ANSI styling, widths are measured display-aware.
	Rows [][]string
	// MaxWidth is the maximum total table width. Auto columns shrink to fit.
	MaxWidth int
	// ShowHeader controls whether the header row is displayed.
	ShowHeader bool
	// HeaderStyle is the lipgloss style for the header row.
	HeaderStyle lipgloss.Style
	// RowStyle is the lipgloss style for data rows.
	RowStyle lipgloss.Style
	// Separator is the column separator string (default: two spaces).
	Separator string
}

// DefaultTableConfig returns a TableConfig with the panel's standard styling.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		ShowHeader:  true,
		Separator:   "  ",
		HeaderStyle: lipgloss.NewStyle().Bold(true),
		RowStyle:    lipgloss.NewStyle(),
	}
}

// RenderTable renders a formatted text table. An empty row set renders the
// header (and its rule) with zero data lines; it is not an error.
func RenderTable(cfg TableConfig) string {
	if len(cfg.Columns) == 0 {
		return ""
	}

	if cfg.Separator == "" {
		cfg.Separator = "  "
	}

	widths := columnWidths(cfg.Columns, cfg.Rows, cfg.MaxWidth, len(cfg.Separator))

	var lines []string

	if cfg.ShowHeader {
		headerCells := make([]string, len(cfg.Columns))
		for i, col := range cfg.Columns {
			headerCells[i] = fitCell(col.Title, widths[i], AlignLeft)
		}
		lines = append(lines, cfg.HeaderStyle.Render(strings.Join(headerCells, cfg.Separator)))

		ruleParts := make([]string, len(cfg.Columns))
		for i := range cfg.Columns {
			ruleParts[i] = strings.Repeat("─", widths[i])
		}
		lines = append(lines, strings.Join(ruleParts, cfg.Separator))
	}

	for _, row := range cfg.Rows {
		cells := make([]string, len(cfg.Columns))
		for i := range cfg.Columns {
			cellText := ""
			if i < len(row) {
				cellText = row[i]
			}
			cells[i] = fitCell(cellText, widths[i], cfg.Columns[i].Align)
		}
		lines = append(lines, cfg.RowStyle.Render(strings.Join(cells, cfg.Separator)))
	}

	return strings.Join(lines, "\n")
}

// fitCell pads or truncates a cell to width. Styled cells (carrying escape
// sequences) are padded but never cut; cutting inside a sequence would leak
// control bytes into the table.
func fitCell(s string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}

	display := lipgloss.Width(s)

	if display > width {
		if strings.ContainsRune(s, '\x1b') {
			return s
		}
		runes := []rune(s)
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}

	padding := width - display
	switch align {
	case AlignRight:
		return strings.Repeat(" ", padding) + s
	case AlignCenter:
		left := padding / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// columnWidths determines the width for each column. Fixed widths are used
// as-is; auto columns take the widest of header and cells, then shrink
// proportionally when the total exceeds maxWidth.
func columnWidths(cols []Column, rows [][]string, maxWidth, sepWidth int) []int {
	widths := make([]int, len(cols))

	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		w := lipgloss.Width(col.Title)
		for _, row := range rows {
			if i < len(row) {
				if cw := lipgloss.Width(row[i]); cw > w {
					w = cw
				}
			}
		}
		if w == 0 {
			w = 1
		}
		widths[i] = w
	}

	if maxWidth > 0 {
		totalSep := sepWidth * (len(cols) - 1)
		totalCol := 0
		for _, w := range widths {
			totalCol += w
		}
		if totalCol+totalSep > maxWidth {
			available := maxWidth - totalSep
			if available < len(cols) {
				available = len(cols)
			}
			for i, w := range widths {
				widths[i] = w * available / totalCol
				if widths[i] < 1 {
					widths[i] = 1
				}
			}
		}
	}

	return widths
}
