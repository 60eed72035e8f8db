package colors

// ColorScheme holds the colors used when rendering the board in a terminal
type ColorScheme struct {
	// Preset name ("default", "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`

	// One color per status column
	ToDo   string `yaml:"todo"`
	ToTest string `yaml:"totest"`
	Done   string `yaml:"done"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // ids, timestamps, empty-column hints
	Normal string `yaml:"normal"`

	// Messages
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
}

// GetPreset returns a preset color scheme by name, falling back to the default
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// Presets lists the preset names GetPreset knows
func Presets() []string {
	return []string{"default", "monochrome"}
}

// ApplyDefaults fills empty fields from the selected preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.ToDo, preset.ToDo)
	fill(&c.ToTest, preset.ToTest)
	fill(&c.Done, preset.Done)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.Success, preset.Success)
	fill(&c.Warning, preset.Warning)
	fill(&c.Error, preset.Error)
}

// MergeFrom copies every non-empty field of other over c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.ToDo, other.ToDo)
	merge(&c.ToTest, other.ToTest)
	merge(&c.Done, other.Done)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
	merge(&c.Success, other.Success)
	merge(&c.Warning, other.Warning)
	merge(&c.Error, other.Error)
}
