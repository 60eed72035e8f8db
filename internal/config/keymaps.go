package config

// KeyMappings binds board screen actions to keys
type KeyMappings struct {
	// Tickets
	AddTicket    string `yaml:"add_ticket"`
	DeleteTicket string `yaml:"delete_ticket"`
	MoveLeft     string `yaml:"move_left"`
	MoveRight    string `yaml:"move_right"`
	MoveUp       string `yaml:"move_up"`
	MoveDown     string `yaml:"move_down"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTicket string `yaml:"prev_ticket"`
	NextTicket string `yaml:"next_ticket"`

	// Forms
	SaveForm string `yaml:"save_form"`

	// Other
	Search   string `yaml:"search"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the vim-style defaults
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTicket:    "a",
		DeleteTicket: "d",
		MoveLeft:     "H",
		MoveRight:    "L",
		MoveUp:       "K",
		MoveDown:     "J",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTicket: "k",
		NextTicket: "j",

		SaveForm: "ctrl+s",

		Search:   "/",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&k.AddTicket, defaults.AddTicket)
	fill(&k.DeleteTicket, defaults.DeleteTicket)
	fill(&k.MoveLeft, defaults.MoveLeft)
	fill(&k.MoveRight, defaults.MoveRight)
	fill(&k.MoveUp, defaults.MoveUp)
	fill(&k.MoveDown, defaults.MoveDown)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevTicket, defaults.PrevTicket)
	fill(&k.NextTicket, defaults.NextTicket)
	fill(&k.SaveForm, defaults.SaveForm)
	fill(&k.Search, defaults.Search)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
