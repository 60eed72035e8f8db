package database

import (
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// walkColumn orders the members of one column by following next pointers
// from the unique head. members must be every ticket whose status is status.
//
// The walk fails with a *models.ChainError when the column has no head or
// several heads, two tickets share a successor, a next pointer leaves the
// column, a prev pointer disagrees with the walk, the walk revisits a ticket,
// or some member is never reached.
func walkColumn(status models.Status, members []*models.Ticket) ([]*models.Ticket, error) {
	if len(members) == 0 {
		return []*models.Ticket{}, nil
	}

	byID := make(map[string]*models.Ticket, len(members))
	successorOf := make(map[string]string, len(members))
	var head *models.Ticket

	for _, t := range members {
		byID[t.ID] = t
		if t.PrevID == nil {
			if head != nil {
				return nil, models.NewChainError(status, t.ID, "multiple heads (also "+head.ID+")")
			}
			head = t
		}
		if t.NextID != nil {
			if other, dup := successorOf[*t.NextID]; dup {
				return nil, models.NewChainError(status, *t.NextID, "fork: successor of both "+other+" and "+t.ID)
			}
			successorOf[*t.NextID] = t.ID
		}
	}

	if head == nil {
		return nil, models.NewChainError(status, "", "no head ticket (cycle through every member)")
	}

	ordered := make([]*models.Ticket, 0, len(members))
	visited := make(map[string]bool, len(members))
	var prev *models.Ticket

	for cur := head; cur != nil; {
		if visited[cur.ID] {
			return nil, models.NewChainError(status, cur.ID, "cycle detected")
		}
		visited[cur.ID] = true

		if prev != nil && (cur.PrevID == nil || *cur.PrevID != prev.ID) {
			return nil, models.NewChainError(status, cur.ID, "prev pointer does not match predecessor "+prev.ID)
		}
		ordered = append(ordered, cur)

		if cur.NextID == nil {
			break
		}
		next, ok := byID[*cur.NextID]
		if !ok {
			return nil, models.NewChainError(status, cur.ID, "next pointer "+*cur.NextID+" leaves the column")
		}
		prev, cur = cur, next
	}

	if len(ordered) != len(members) {
		for _, t := range members {
			if !visited[t.ID] {
				return nil, models.NewChainError(status, t.ID, "ticket not reachable from column head")
			}
		}
	}

	return ordered, nil
}
