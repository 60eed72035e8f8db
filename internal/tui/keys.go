package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/ticketboard/internal/config"
)

// keyMap is the board screen's bindings, built from the configured key mappings
type keyMap struct {
	Add       key.Binding
	Delete    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	SaveForm  key.Binding
	Search    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys(km.AddTicket), key.WithHelp(km.AddTicket, "add ticket")),
		Delete:    key.NewBinding(key.WithKeys(km.DeleteTicket), key.WithHelp(km.DeleteTicket, "delete")),
		MoveLeft:  key.NewBinding(key.WithKeys(km.MoveLeft), key.WithHelp(km.MoveLeft, "move to previous column")),
		MoveRight: key.NewBinding(key.WithKeys(km.MoveRight), key.WithHelp(km.MoveRight, "move to next column")),
		MoveUp:    key.NewBinding(key.WithKeys(km.MoveUp), key.WithHelp(km.MoveUp, "move up")),
		MoveDown:  key.NewBinding(key.WithKeys(km.MoveDown), key.WithHelp(km.MoveDown, "move down")),
		Left:      key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn+"/←", "previous column")),
		Right:     key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn+"/→", "next column")),
		Up:        key.NewBinding(key.WithKeys(km.PrevTicket, "up"), key.WithHelp(km.PrevTicket+"/↑", "previous ticket")),
		Down:      key.NewBinding(key.WithKeys(km.NextTicket, "down"), key.WithHelp(km.NextTicket+"/↓", "next ticket")),
		SaveForm:  key.NewBinding(key.WithKeys(km.SaveForm), key.WithHelp(km.SaveForm, "save form")),
		Search:    key.NewBinding(key.WithKeys(km.Search), key.WithHelp(km.Search, "search titles")),
		Refresh:   key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "reload")),
		Help:      key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:      key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp is shown in the status bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.MoveRight, k.Search, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Delete, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Left, k.Right, k.Up, k.Down},
		{k.SaveForm, k.Search, k.Refresh, k.Help, k.Quit},
	}
}
