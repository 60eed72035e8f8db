package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/ticketboard/internal/models"
	ticketservice "github.com/thenoetrevino/ticketboard/internal/services/ticket"
)

// loadBoard reads every column in order
func (m Model) loadBoard(selectID string) tea.Cmd {
	return m.reload(selectID, "")
}

func (m Model) reload(selectID, notice string) tea.Cmd {
	ctx, svc := m.Ctx, m.App.TicketService
	return func() tea.Msg {
		columns, err := svc.ListByColumn(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return boardLoadedMsg{columns: columns, selectID: selectID, notice: notice}
	}
}

// mutate runs op and then reloads the board, keeping the cursor on the
// ticket op returns
func (m Model) mutate(op func(ctx context.Context, svc ticketservice.Service) (string, string, error)) tea.Cmd {
	ctx, svc := m.Ctx, m.App.TicketService
	return func() tea.Msg {
		selectID, notice, err := op(ctx, svc)
		if err != nil {
			return errMsg{err: err}
		}
		columns, err := svc.ListByColumn(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return boardLoadedMsg{columns: columns, selectID: selectID, notice: notice}
	}
}

func (m Model) createTicket(title, content string, status models.Status) tea.Cmd {
	return m.mutate(func(ctx context.Context, svc ticketservice.Service) (string, string, error) {
		t, err := svc.CreateTicket(ctx, ticketservice.CreateTicketRequest{
			Title:   title,
			Content: content,
			Status:  status,
		})
		if err != nil {
			return "", "", err
		}
		return t.ID, fmt.Sprintf("Created %q", t.Title), nil
	})
}

func (m Model) deleteTicket(t *models.Ticket) tea.Cmd {
	id, title := t.ID, t.Title
	return m.mutate(func(ctx context.Context, svc ticketservice.Service) (string, string, error) {
		if err := svc.DeleteTicket(ctx, id); err != nil {
			return "", "", err
		}
		return "", fmt.Sprintf("Deleted %q", title), nil
	})
}

// moveTicket runs a move and keeps the cursor on the moved ticket
func (m Model) moveTicket(req ticketservice.MoveTicketRequest) tea.Cmd {
	return m.mutate(func(ctx context.Context, svc ticketservice.Service) (string, string, error) {
		t, err := svc.MoveTicket(ctx, req)
		if err != nil {
			return "", "", err
		}
		return t.ID, "", nil
	})
}

func (m Model) search(query string) tea.Cmd {
	ctx, svc := m.Ctx, m.App.TicketService
	return func() tea.Msg {
		tickets, err := svc.SearchByTitle(ctx, query)
		if err != nil {
			return errMsg{err: err}
		}
		return searchResultMsg{query: query, tickets: tickets}
	}
}

// listen waits for the next daemon event. It returns nil when running
// without the daemon.
func (m Model) listen() tea.Cmd {
	if m.EventChan == nil {
		return nil
	}
	ch, ctx := m.EventChan, m.Ctx
	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				return ConnectionLostMsg{}
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}
