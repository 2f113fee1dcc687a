package models

// Category is a fixed gossip topic
type Category string

const (
	CategoryCareer        Category = "career"
	CategoryRelationships Category = "relationships"
	CategoryFashion       Category = "fashion"
	CategoryScandal       Category = "scandal"
	CategoryLifestyle     Category = "lifestyle"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryCareer,
	CategoryRelationships,
	CategoryFashion,
	CategoryScandal,
	CategoryLifestyle,
}

var categoryNames = map[Category]string{
	CategoryCareer:        "Career News",
	CategoryRelationships: "Relationships",
	CategoryFashion:       "Fashion",
	CategoryScandal:       "Scandals",
	CategoryLifestyle:     "Lifestyle",
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human readable name
func (c Category) DisplayName() string {
	return categoryNames[c]
}

// Theme selects the publication styling of a story
type Theme string

const (
	ThemeTabloid       Theme = "tabloid"
	ThemeFashion       Theme = "fashion"
	ThemeEntertainment Theme = "entertainment"
	ThemeScandal       Theme = "scandal"
)

// DefaultTheme is used when a request carries no theme
const DefaultTheme = ThemeTabloid

// Themes lists every theme in display order
var Themes = []Theme{ThemeTabloid, ThemeFashion, ThemeEntertainment, ThemeScandal}

type themeInfo struct {
	name        string
	publication string
	label       string
}

var themeInfos = map[Theme]themeInfo{
	ThemeTabloid:       {"Tabloid", "The Daily Gossip", "EXCLUSIVE"},
	ThemeFashion:       {"Fashion", "VAGUE Magazine", "TRENDING"},
	ThemeEntertainment: {"Entertainment", "Entertainment Tonight", "BREAKING"},
	ThemeScandal:       {"Scandal", "SCANDAL TIMES", "SHOCKING"},
}

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	_, ok := themeInfos[t]
	return ok
}

// DisplayName returns the human readable name
func (t Theme) DisplayName() string { return themeInfos[t].name }

// Publication returns the fictional masthead for the theme
func (t Theme) Publication() string { return themeInfos[t].publication }

// Label returns the banner label shown above a story
func (t Theme) Label() string { return themeInfos[t].label }

// ThemeOrDefault returns the theme for s, or DefaultTheme when s is empty or unknown
func ThemeOrDefault(s string) Theme {
	if t := Theme(s); t.Valid() {
		return t
	}
	return DefaultTheme
}

// CatalogEntry describes one selectable option
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Publication string `json:"publication,omitempty"`
	Label       string `json:"label,omitempty"`
}

// Catalog is the full set of selectable categories and themes
type Catalog struct {
	Categories []CatalogEntry `json:"categories"`
	Themes     []CatalogEntry `json:"themes"`
}

// NewCatalog builds the catalog in display order
func NewCatalog() Catalog {
	c := Catalog{
		Categories: make([]CatalogEntry, 0, len(Categories)),
		Themes:     make([]CatalogEntry, 0, len(Themes)),
	}
	for _, cat := range Categories {
		c.Categories = append(c.Categories, CatalogEntry{ID: string(cat), Name: cat.DisplayName()})
	}
	for _, th := range Themes {
		c.Themes = append(c.Themes, CatalogEntry{
			ID:          string(th),
			Name:        th.DisplayName(),
			Publication: th.Publication(),
			Label:       th.Label(),
		})
	}
	return c
}
