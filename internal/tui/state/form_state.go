package state

import "charm.land/huh/v2"

// FormState holds the new ticket form and the values it edits in place.
// The form writes through pointers to Title and Content, so FormState
// must be shared by pointer.
type FormState struct {
	TicketForm *huh.Form
	Title      string
	Content    string
}

// NewFormState creates an empty FormState
func NewFormState() *FormState {
	return &FormState{}
}

// Active reports whether a form is open
func (s *FormState) Active() bool {
	return s.TicketForm != nil
}

// Clear drops the form and its values
func (s *FormState) Clear() {
	s.TicketForm = nil
	s.Title = ""
	s.Content = ""
}
