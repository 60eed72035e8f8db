package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/ticketboard/internal/database"
	"github.com/thenoetrevino/ticketboard/internal/models"
)

// links is the persisted position of a ticket
type links struct {
	status models.Status
	next   *string
	prev   *string
}

// chainEdit rewires column chains inside one transaction.
//
// Every ticket it hands out is loaded once and shared, so a ticket that is
// both a neighbour and an anchor is edited through a single value. Tickets not
// yet loaded are untouched and the database is accurate for them. Nothing is
// written until flush, which saves only tickets whose links actually changed.
type chainEdit struct {
	ctx    context.Context
	tx     database.TicketRepository
	loaded map[string]*models.Ticket
	orig   map[string]links
	order  []string
}

func newChainEdit(ctx context.Context, tx database.TicketRepository) *chainEdit {
	return &chainEdit{
		ctx:    ctx,
		tx:     tx,
		loaded: make(map[string]*models.Ticket),
		orig:   make(map[string]links),
	}
}

// get returns the shared copy of a ticket, loading it on first use
func (e *chainEdit) get(id string) (*models.Ticket, error) {
	if t, ok := e.loaded[id]; ok {
		return t, nil
	}
	t, err := e.tx.GetTicket(e.ctx, id)
	if err != nil {
		return nil, err
	}
	return e.adopt(t), nil
}

// adopt registers a ticket read through a query. An already loaded ticket wins.
func (e *chainEdit) adopt(t *models.Ticket) *models.Ticket {
	if t == nil {
		return nil
	}
	if cur, ok := e.loaded[t.ID]; ok {
		return cur
	}
	e.loaded[t.ID] = t
	e.orig[t.ID] = links{status: t.Status, next: models.CopyID(t.NextID), prev: models.CopyID(t.PrevID)}
	e.order = append(e.order, t.ID)
	return t
}

// forget drops a ticket that is being deleted so flush does not write it
func (e *chainEdit) forget(id string) {
	delete(e.loaded, id)
	delete(e.orig, id)
}

// changed lists loaded tickets whose status or links differ from storage
func (e *chainEdit) changed() []*models.Ticket {
	var out []*models.Ticket
	for _, id := range e.order {
		t, ok := e.loaded[id]
		if !ok {
			continue
		}
		o := e.orig[id]
		if t.Status != o.status || !models.SameID(t.NextID, o.next) || !models.SameID(t.PrevID, o.prev) {
			out = append(out, t)
		}
	}
	return out
}

// flush persists every changed ticket. It reports whether anything was written.
func (e *chainEdit) flush() (bool, error) {
	dirty := e.changed()
	if len(dirty) == 0 {
		return false, nil
	}
	if err := e.tx.SaveLinks(e.ctx, dirty...); err != nil {
		return false, err
	}
	for _, t := range dirty {
		e.orig[t.ID] = links{status: t.Status, next: models.CopyID(t.NextID), prev: models.CopyID(t.PrevID)}
	}
	return true, nil
}

// neighbours returns t's predecessor and successor after checking that the
// predecessor scan, the prev pointer and the successor's back pointer agree.
// Must run before anything in t's column is edited.
func (e *chainEdit) neighbours(t *models.Ticket) (pred, succ *models.Ticket, err error) {
	found, err := e.tx.FindPredecessor(e.ctx, t.ID)
	if err != nil {
		return nil, nil, err
	}
	pred = e.adopt(found)

	var predID *string
	if pred != nil {
		predID = &pred.ID
		if pred.Status != t.Status {
			return nil, nil, models.NewChainError(t.Status, t.ID, "predecessor "+pred.ID+" is in column "+string(pred.Status))
		}
	}
	if !models.SameID(t.PrevID, predID) {
		return nil, nil, models.NewChainError(t.Status, t.ID, "prev pointer disagrees with predecessor scan")
	}

	if t.NextID != nil {
		succ, err = e.get(*t.NextID)
		if errors.Is(err, models.ErrTicketNotFound) {
			return nil, nil, models.NewChainError(t.Status, t.ID, "next pointer "+*t.NextID+" is dangling")
		}
		if err != nil {
			return nil, nil, err
		}
		if succ.Status != t.Status {
			return nil, nil, models.NewChainError(t.Status, t.ID, "successor "+succ.ID+" is in column "+string(succ.Status))
		}
		if succ.PrevID == nil || *succ.PrevID != t.ID {
			return nil, nil, models.NewChainError(t.Status, succ.ID, "prev pointer does not point back to "+t.ID)
		}
	}
	return pred, succ, nil
}

// unlink splices t out of its chain: pred.next = t.next, succ.prev = t.prev.
// A head's successor becomes the new head.
func unlink(t, pred, succ *models.Ticket) {
	if pred != nil {
		pred.NextID = models.CopyID(t.NextID)
	}
	if succ != nil {
		succ.PrevID = models.CopyID(t.PrevID)
	}
	t.NextID, t.PrevID = nil, nil
}

// linkAfter places t directly after anchor, in anchor's column
func (e *chainEdit) linkAfter(t, anchor *models.Ticket) error {
	t.Status = anchor.Status
	t.PrevID = ref(anchor.ID)
	t.NextID = models.CopyID(anchor.NextID)
	if anchor.NextID != nil {
		succ, err := e.get(*anchor.NextID)
		if err != nil {
			return err
		}
		succ.PrevID = ref(t.ID)
	}
	anchor.NextID = ref(t.ID)
	return nil
}

// linkBefore places t directly before anchor. With no predecessor t becomes
// the column head.
func (e *chainEdit) linkBefore(t, anchor *models.Ticket) error {
	t.Status = anchor.Status
	t.NextID = ref(anchor.ID)
	t.PrevID = models.CopyID(anchor.PrevID)
	if anchor.PrevID != nil {
		pred, err := e.get(*anchor.PrevID)
		if err != nil {
			return err
		}
		pred.NextID = ref(t.ID)
	}
	anchor.PrevID = ref(t.ID)
	return nil
}

// linkAtEnd appends t after tail, or makes it the only member of an empty column
func (e *chainEdit) linkAtEnd(t, tail *models.Ticket, status models.Status) error {
	if tail == nil {
		t.Status = status
		t.NextID, t.PrevID = nil, nil
		return nil
	}
	return e.linkAfter(t, tail)
}

// moveToEnd unlinks t and appends it to status
func (e *chainEdit) moveToEnd(t *models.Ticket, status models.Status) error {
	pred, succ, err := e.neighbours(t)
	if err != nil {
		return err
	}
	tail, err := e.tx.FindColumnTail(e.ctx, status)
	if err != nil {
		return err
	}
	tail = e.adopt(tail)
	if tail != nil && tail.ID == t.ID {
		return nil // already last in its own column
	}

	unlink(t, pred, succ)
	return e.linkAtEnd(t, tail, status)
}

// remove unlinks t, deletes its row and saves the rewired neighbours
func (e *chainEdit) remove(t *models.Ticket) error {
	pred, succ, err := e.neighbours(t)
	if err != nil {
		return err
	}
	unlink(t, pred, succ)

	// the row goes first so its stale links never collide with the rewired ones
	if err := e.tx.DeleteTicket(e.ctx, t.ID); err != nil {
		return err
	}
	e.forget(t.ID)
	_, err = e.flush()
	return err
}

// appendTicket inserts a new ticket as the tail of its column
func appendTicket(ctx context.Context, tx database.TicketRepository, t *models.Ticket) error {
	tail, err := tx.FindColumnTail(ctx, t.Status)
	if err != nil {
		return err
	}

	t.NextID, t.PrevID = nil, nil
	if err := tx.InsertTicket(ctx, t); err != nil {
		return err
	}

	e := newChainEdit(ctx, tx)
	e.adopt(t)
	if err := e.linkAtEnd(t, e.adopt(tail), t.Status); err != nil {
		return err
	}
	_, err = e.flush()
	return err
}

type moveResult struct {
	ticket  *models.Ticket
	from    models.Status
	changed bool
}

// reposition implements MoveTicket inside a transaction.
//
// Every referenced ticket is loaded and every affected chain is checked
// before any link is edited, so a failed move writes nothing.
func reposition(ctx context.Context, tx database.TicketRepository, req MoveTicketRequest) (*moveResult, error) {
	e := newChainEdit(ctx, tx)

	moved, err := e.get(req.TicketID)
	if err != nil {
		return nil, err
	}
	result := &moveResult{ticket: moved, from: moved.Status}

	anchorID, after := req.AfterID, true
	if anchorID == nil {
		anchorID, after = req.BeforeID, false
	}

	var anchor *models.Ticket
	if anchorID != nil {
		if anchor, err = e.get(*anchorID); err != nil {
			return nil, err
		}
		if anchor.ID == moved.ID {
			return result, nil
		}
	}

	target := req.ToStatus
	if target == "" {
		target = moved.Status
		if anchor != nil {
			target = anchor.Status
		}
	}
	if anchor != nil && anchor.Status != target {
		return nil, fmt.Errorf("%w: %w: %s is in %s, not %s",
			ErrValidation, ErrAnchorColumnMismatch, anchor.ID, anchor.Status, target)
	}

	pred, succ, err := e.neighbours(moved)
	if err != nil {
		return nil, err
	}

	switch {
	case anchor != nil:
		// the anchor's own links are verified while they are still unedited
		if _, _, err := e.neighbours(anchor); err != nil {
			return nil, err
		}
		unlink(moved, pred, succ)
		if after {
			err = e.linkAfter(moved, anchor)
		} else {
			err = e.linkBefore(moved, anchor)
		}
	default:
		tail, tailErr := tx.FindColumnTail(ctx, target)
		if tailErr != nil {
			return nil, tailErr
		}
		tail = e.adopt(tail)
		if tail != nil && tail.ID == moved.ID {
			return result, nil
		}
		unlink(moved, pred, succ)
		err = e.linkAtEnd(moved, tail, target)
	}
	if err != nil {
		return nil, err
	}

	if result.changed, err = e.flush(); err != nil {
		return nil, err
	}
	return result, nil
}

// relinkColumn copies tickets into one column and links them in slice order
func relinkColumn(status models.Status, tickets []*models.Ticket) []*models.Ticket {
	out := make([]*models.Ticket, len(tickets))
	for i, t := range tickets {
		c := t.Clone()
		c.Status = status
		c.NextID, c.PrevID = nil, nil
		out[i] = c
	}
	for i := range out {
		if i > 0 {
			out[i].PrevID = ref(out[i-1].ID)
		}
		if i < len(out)-1 {
			out[i].NextID = ref(out[i+1].ID)
		}
	}
	return out
}

func ref(id string) *string {
	return &id
}
