package report

// Theme selects a preset visual treatment applied by renderers
type Theme string

const (
	ThemePlain    Theme = "plain"
	ThemeBox      Theme = "box"
	ThemeBooktabs Theme = "booktabs"
)

// Defaults carries the formatting configuration for a bind call. There are no
// process-wide options: callers construct a Defaults once and thread it into
// every Bind explicitly.
type Defaults struct {
	// HideGroupLabel drops the group column name from title labels, leaving
	// only the value.
	HideGroupLabel bool
	// LabelSeparator joins the group column name and its value in title labels.
	LabelSeparator string

	FontFamily string
	FontSize   float64
	Theme      Theme

	HeaderBold bool
	TitleBold  bool

	// Autofit width bounds, in character units
	MinColWidth float64
	MaxColWidth float64
}

// StandardDefaults returns the baseline configuration used when callers have
// no overrides
func StandardDefaults() Defaults {
	return Defaults{
		LabelSeparator: ": ",
		FontFamily:     "Helvetica",
		FontSize:       11,
		Theme:          ThemeBooktabs,
		HeaderBold:     true,
		TitleBold:      true,
		MinColWidth:    6,
		MaxColWidth:    60,
	}
}
