package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/levlab/internal/series"
	"github.com/dyike/levlab/internal/storage"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// printSummary shows the final value of each requested column plus the
// covered range.
func printSummary(title string, s *series.Series, keys []series.Key) {
	var b strings.Builder

	if s.Synthetic() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("steps 0 to %d (%d rows)", s.Step(s.Len()-1), s.Len())))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s to %s (%d rows)",
			s.Time(0).Format("2006-01-02"), s.Time(s.Len()-1).Format("2006-01-02"), s.Len())))
	}
	b.WriteString("\n")

	for _, k := range keys {
		if !s.Has(k) {
			continue
		}
		b.WriteString(labelStyle.Render(k.Label()))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%14.4f", s.FinalValue(k))))
		b.WriteString("\n")
	}

	fmt.Println(titleStyle.Render(title))
	fmt.Println(boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// printRunHistory lists journaled runs, newest first.
func printRunHistory(runs []storage.RunRecord) {
	if len(runs) == 0 {
		fmt.Println(dimStyle.Render("no journaled runs yet"))
		return
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%-4s %-10s %-9s %8s %7s %8s %14s  %s",
		"ID", "SYMBOL", "KIND", "LEV", "MER", "ROWS", "FINAL ADJ", "CREATED")))
	b.WriteString("\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%-4d %-10s %-9s %8.2f %6.2f%% %8d %14.4f  %s\n",
			r.ID, r.Symbol, r.Kind, r.Leverage, r.Expense*100, r.Rows,
			r.FinalAdjusted, r.CreatedAt.Format("2006-01-02 15:04")))
	}

	fmt.Println(titleStyle.Render("Run history"))
	fmt.Println(boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}
