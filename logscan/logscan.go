// Package logscan filters the gateway service's dated log by the fixed
// category markers its lines carry and reports the most recent entries per
// category. The gateway writes one file per day; the scanner reads a single
// day's file in one pass and keeps a bounded tail for each category.
package logscan

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultLines is how many lines are kept per category when the caller
// does not say otherwise.
const DefaultLines = 20

// maxLineBytes bounds a single log line; the gateway's own lines are far
// shorter.
const maxLineBytes = 64 * 1024

// Category pairs a display name with the marker the gateway stamps on its
// log lines.
type Category struct {
	Name   string
	Marker string
}

// Categories mirrors the markers the gateway service writes.
var Categories = []Category{
	{Name: "status", Marker: "✅"},
	{Name: "errors", Marker: "❌"},
	{Name: "warnings", Marker: "⚠"},
	{Name: "playback", Marker: "🎬"},
	{Name: "relays", Marker: "🔌"},
}

// Config controls a scan.
type Config struct {
	// LogDir is the directory holding the gateway's dated logs.
	LogDir string
	// Lines is the tail size kept per category.
	Lines int
	// Date selects the day to scan. The zero value means today.
	Date time.Time
	// Logger for diagnostics. A no-op logger is used if nil.
	Logger *slog.Logger
}

// Section holds the tail of one category, oldest first.
type Section struct {
	Category Category
	Lines    []string
}

// Report is the result of scanning one day's log.
type Report struct {
	Path     string
	Date     time.Time
	Scanned  int
	Sections []Section
}

// LogFileName returns the gateway's log file name for a day, like
// "gateway-2026-08-25.log".
func LogFileName(t time.Time) string {
	return "gateway-" + t.Format("2006-01-02") + ".log"
}

// Scan reads the selected day's log and collects the last Config.Lines
// matching lines per category. A line may carry several markers and then
// lands in several sections.
func Scan(cfg Config) (*Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Lines <= 0 {
		cfg.Lines = DefaultLines
	}
	date := cfg.Date
	if date.IsZero() {
		date = time.Now()
	}

	path := filepath.Join(cfg.LogDir, LogFileName(date))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("logscan: open %s: %w", path, err)
	}
	defer f.Close()

	tails := make([][]string, len(Categories))
	scanned := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		scanned++
		for i, cat := range Categories {
			if !strings.Contains(line, cat.Marker) {
				continue
			}
			tails[i] = append(tails[i], line)
			if len(tails[i]) > cfg.Lines {
				tails[i] = tails[i][len(tails[i])-cfg.Lines:]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("logscan: read %s: %w", path, err)
	}

	logger.Debug("scanned gateway log", "path", path, "lines", scanned)

	report := &Report{Path: path, Date: date, Scanned: scanned}
	for i, cat := range Categories {
		report.Sections = append(report.Sections, Section{Category: cat, Lines: tails[i]})
	}
	return report, nil
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Render formats the report for the terminal: one headed section per
// category with its tail, or a placeholder when the category is quiet.
func (r *Report) Render() string {
	var out strings.Builder

	fmt.Fprintf(&out, "%s (%d lines)\n", r.Path, r.Scanned)
	for _, s := range r.Sections {
		out.WriteString("\n")
		out.WriteString(sectionStyle.Render(fmt.Sprintf("── %s %s", s.Category.Name, s.Category.Marker)))
		out.WriteString("\n")
		if len(s.Lines) == 0 {
			out.WriteString(emptyStyle.Render("(no entries)"))
			out.WriteString("\n")
			continue
		}
		for _, line := range s.Lines {
			out.WriteString(line)
			out.WriteString("\n")
		}
	}

	return out.String()
}
