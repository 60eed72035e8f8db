package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/ticketboard/internal/config/colors"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Board column styles
	ColumnStyle lipgloss.Style
	ColumnWidth = 26

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Created:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Content"

	// Message styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	statusColors = map[models.Status]string{}
)

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()

	statusColors = map[models.Status]string{
		models.StatusToDo:   scheme.ToDo,
		models.StatusToTest: scheme.ToTest,
		models.StatusDone:   scheme.Done,
	}

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Subtle)).
		Padding(0, 1).
		Width(ColumnWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Error))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Warning))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderStatus renders a status name in its column color
func RenderStatus(status models.Status) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(statusColors[status])).
		Render(string(status))
}

// RenderTicketLine renders "n. title  id" for list output
func RenderTicketLine(position int, t *models.Ticket) string {
	return fmt.Sprintf("%3d. %s  %s", position, ValueStyle.Render(t.Title), SubtitleStyle.Render(t.ID))
}

// RenderColumn renders one board column: a colored header, then each
// ticket's title and short ID in chain order
func RenderColumn(status models.Status, tickets []*models.Ticket) string {
	var b strings.Builder
	b.WriteString(RenderStatus(status))
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(tickets))))
	b.WriteString("\n")

	if len(tickets) == 0 {
		b.WriteString(SubtitleStyle.Render("empty"))
	}
	for i, t := range tickets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ValueStyle.Render(t.Title))
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render(ShortID(t.ID)))
	}

	return ColumnStyle.BorderForeground(lipgloss.Color(statusColors[status])).Render(b.String())
}

// RenderBoard joins the columns side by side in board order
func RenderBoard(columns map[models.Status][]*models.Ticket) string {
	rendered := make([]string, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		rendered = append(rendered, RenderColumn(st, columns[st]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ShortID trims a UUID to its first block
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
