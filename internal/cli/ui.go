package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/critpathlabs/critpath/pkg/cpm"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary values
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors and critical entries
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleCritical for critical-path entries.
	StyleCritical = lipgloss.NewStyle().Bold(true).Foreground(colorRed)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// printSuccess writes a success line with a green check mark to stderr.
func printSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconSuccess.Render("✓"), fmt.Sprintf(format, args...))
}

// printError writes an error line with a red cross to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconError.Render("✗"), fmt.Sprintf(format, args...))
}

// renderEdgeList formats the critical edge map for terminal output, one
// edge per line in the engine's deterministic order.
func renderEdgeList(result *cpm.Result) string {
	out := StyleTitle.Render("Critical path") + "\n"
	for _, ew := range result.CriticalEdgeList() {
		out += fmt.Sprintf("  %s %s %s  %s\n",
			StyleCritical.Render(ew.Edge.From),
			StyleDim.Render("->"),
			StyleCritical.Render(ew.Edge.To),
			StyleNumber.Render(strconv.Itoa(ew.Weight)))
	}
	out += fmt.Sprintf("%s %s\n",
		StyleTitle.Render("Total duration"),
		StyleNumber.Render(strconv.Itoa(result.TotalDuration)))
	return out
}

// renderScheduleTable formats the full per-task schedule as a table.
// Critical tasks are highlighted.
func renderScheduleTable(result *cpm.Result) string {
	critical := make(map[string]bool, len(result.CriticalTasks))
	for _, id := range result.CriticalTasks {
		critical[id] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			if critical[result.TopoOrder[row]] {
				return StyleCritical.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Headers("TASK", "ES", "EF", "LS", "LF", "SLACK")

	for _, id := range result.TopoOrder {
		s := result.Tasks[id]
		t.Row(id,
			strconv.Itoa(s.ES), strconv.Itoa(s.EF),
			strconv.Itoa(s.LS), strconv.Itoa(s.LF),
			strconv.Itoa(s.Slack))
	}
	return t.Render()
}
