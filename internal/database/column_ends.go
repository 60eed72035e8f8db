package database

import "github.com/thenoetrevino/ticketboard/internal/models"

type endKey struct {
	status models.Status
	end    string // "head" or "tail"
}

// columnEnds remembers column head and tail lookups for the life of one
// transaction. A nil entry records an empty column. Any write forgets
// everything, so a lookup never outlives the rows it was read from.
type columnEnds struct {
	found map[endKey]*models.Ticket
}

func newColumnEnds() *columnEnds {
	return &columnEnds{found: make(map[endKey]*models.Ticket)}
}

// get returns a copy of the remembered ticket. A nil *columnEnds never hits.
func (c *columnEnds) get(status models.Status, end string) (*models.Ticket, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.found[endKey{status, end}]
	if !ok || t == nil {
		return nil, ok
	}
	return t.Clone(), true
}

func (c *columnEnds) put(status models.Status, end string, t *models.Ticket) {
	if c == nil {
		return
	}
	if t != nil {
		t = t.Clone()
	}
	c.found[endKey{status, end}] = t
}

// column records both ends of a freshly walked column
func (c *columnEnds) column(status models.Status, ordered []*models.Ticket) {
	if len(ordered) == 0 {
		c.put(status, "head", nil)
		c.put(status, "tail", nil)
		return
	}
	c.put(status, "head", ordered[0])
	c.put(status, "tail", ordered[len(ordered)-1])
}

func (c *columnEnds) reset() {
	if c == nil {
		return
	}
	clear(c.found)
}
