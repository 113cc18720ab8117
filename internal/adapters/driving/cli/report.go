package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderReport formats a run result for the terminal.
func renderReport(result *domain.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Analysis: "+result.Metadata.Role+" / "+result.Metadata.Task))
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("%d documents, run %s", len(result.Metadata.Documents), result.Metadata.RunID)))

	for _, w := range result.Metadata.Warnings {
		fmt.Fprintf(&b, "%s\n", warnStyle.Render("warning: "+w))
	}

	if len(result.Sections) == 0 {
		b.WriteString("No relevant sections found.\n")
		return b.String()
	}

	b.WriteString(headingStyle.Render("Top sections") + "\n")
	for _, ss := range result.Sections {
		title := ss.Section.Heading
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "  %2d. %s %s\n",
			ss.Rank,
			title,
			scoreStyle.Render(fmt.Sprintf("(%s p.%d, score %.4f)", ss.Section.DocumentID, ss.Section.StartPage, ss.Score)))
	}

	if len(result.Chunks) > 0 {
		b.WriteString("\n" + headingStyle.Render("Refined passages") + "\n")
		for _, c := range result.Chunks {
			fmt.Fprintf(&b, "  %2d. %s %s\n",
				c.Rank,
				snippet(c.Text, 120),
				scoreStyle.Render(fmt.Sprintf("(%s p.%d, score %.4f)", c.DocumentID, c.Page, c.Score)))
		}
	}

	return b.String()
}

// snippet returns a single-line preview of text, at most n runes.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
