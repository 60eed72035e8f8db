package ticket

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ticketboard/internal/cli"
	"github.com/thenoetrevino/ticketboard/internal/cli/styles"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// ShowCmd returns the ticket show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket",
		Long:  "Show a ticket with its neighbours and content rendered as markdown.",
		Args:  cli.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd, false)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	ticket, err := cliInstance.App.TicketService.GetTicket(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(ticket)
	}

	fmt.Println(styles.RenderCard(renderTicket(ticket)))
	return nil
}

// renderTicket builds the card body for one ticket
func renderTicket(t *models.Ticket) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(t.ID))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("Status:", styles.RenderStatus(t.Status))
	field("Created:", styles.ValueStyle.Render(humanize.Time(t.CreatedAt)))
	field("Updated:", styles.ValueStyle.Render(humanize.Time(t.UpdatedAt)))
	field("After:", neighbour(t.PrevID, "head of column"))
	field("Before:", neighbour(t.NextID, "end of column"))

	b.WriteString(styles.SectionStyle.Render("Content"))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(t.Content, styles.CardWidth-6))

	return strings.TrimRight(b.String(), "\n")
}

func neighbour(id *string, none string) string {
	if id == nil {
		return styles.SubtitleStyle.Render(none)
	}
	return styles.ValueStyle.Render(*id)
}

// renderMarkdown renders content with glamour, falling back to the raw text
func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Debug("markdown renderer unavailable", "error", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		slog.Debug("failed to render markdown", "error", err)
		return content
	}
	return strings.Trim(rendered, "\n")
}
