package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/ticketboard/internal/config/colors"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// styles are the board screen's lipgloss styles for one color scheme
type styles struct {
	column        lipgloss.Style
	card          lipgloss.Style
	selectedCard  lipgloss.Style
	cardID        lipgloss.Style
	header        map[models.Status]lipgloss.Style
	subtle        lipgloss.Style
	title         lipgloss.Style
	dialog        lipgloss.Style
	dangerDialog  lipgloss.Style
	info          lipgloss.Style
	warning       lipgloss.Style
	error         lipgloss.Style
	statusLive    lipgloss.Style
	statusOffline lipgloss.Style
}

func newStyles(scheme colors.ColorScheme) styles {
	scheme.ApplyDefaults()

	header := map[models.Status]lipgloss.Style{}
	for st, c := range map[models.Status]string{
		models.StatusToDo:   scheme.ToDo,
		models.StatusToTest: scheme.ToTest,
		models.StatusDone:   scheme.Done,
	} {
		header[st] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}

	return styles{
		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Subtle)).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(scheme.Subtle)).
			Foreground(lipgloss.Color(scheme.Normal)).
			Padding(0, 1),
		selectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(scheme.Accent)).
			Foreground(lipgloss.Color(scheme.Title)).
			Bold(true).
			Padding(0, 1),
		cardID: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
		header: header,
		subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Accent)).
			Padding(1, 2),
		dangerDialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.Error)).
			Padding(1, 2),
		info:          lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Success)),
		warning:       lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Warning)),
		error:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Error)),
		statusLive:    lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Success)),
		statusOffline: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
	}
}
