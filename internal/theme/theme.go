package theme

// Theme is one catalog entry: illustrations, colours and the text
// progression shown while the recipient keeps declining.
type Theme struct {
	ID          string
	Name        string
	Emoji       string
	Description string

	// Images are ordered from neutral (index 0) to the saddest.
	Images           []string
	CelebrationImage string

	// DeclineMessages are consumed in order, one per decline.
	DeclineMessages    []string
	CelebrationMessage string

	// Gradient holds the background colour stops, first to last.
	Gradient []string
	Accent   string
}

// Preset is a ready-made question offered by the builder.
type Preset struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ClosingMessage replaces the decline messages once they run out.
const ClosingMessage = `The "No" button self-destructed... Press Yes! 😤❤️`

// CelebrationGradient is the background shown after the recipient accepts.
var CelebrationGradient = []string{"#ff9a9e", "#fecfef", "#fdfcfb"}

// Catalog is an immutable, ordered theme table.
type Catalog struct {
	order   []string
	themes  map[string]*Theme
	presets []Preset
}

// NewCatalog builds a catalog from themes in display order. Later themes
// with a duplicate ID replace earlier ones but keep the first position.
func NewCatalog(themes []Theme, presets []Preset) *Catalog {
	c := &Catalog{
		themes:  make(map[string]*Theme, len(themes)),
		presets: append([]Preset(nil), presets...),
	}
	for i := range themes {
		t := themes[i]
		if _, ok := c.themes[t.ID]; !ok {
			c.order = append(c.order, t.ID)
		}
		c.themes[t.ID] = &t
	}
	return c
}

// Lookup returns the theme registered under id.
func (c *Catalog) Lookup(id string) (*Theme, bool) {
	t, ok := c.themes[id]
	return t, ok
}

// IDs returns theme identifiers in display order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Themes returns the themes in display order.
func (c *Catalog) Themes() []*Theme {
	out := make([]*Theme, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.themes[id])
	}
	return out
}

// Presets returns the builder's question presets in display order.
func (c *Catalog) Presets() []Preset {
	return append([]Preset(nil), c.presets...)
}

// Preset returns the preset with the given ID.
func (c *Catalog) Preset(id string) (Preset, bool) {
	for _, p := range c.presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
