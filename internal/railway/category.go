package railway

import "strings"

// Category is the rolling stock class of a train, derived from its short name.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Visible bool   `json:"visible"`
}

// Unknown is the category of trains whose name matches no prefix.
var Unknown = Category{ID: "unknown", Name: "Unknown", Color: "#9e9e9e", Visible: true}

type categoryRule struct {
	prefix   string
	category Category
}

// categoryRules is evaluated top-down and the first match wins, so longer
// prefixes sharing a first letter come before shorter ones.
var categoryRules = []categoryRule{
	{"Os", Category{ID: "os", Name: "Osobný vlak", Color: "#4caf50", Visible: true}},
	{"Zr", Category{ID: "zr", Name: "Zrýchlený vlak", Color: "#8bc34a", Visible: true}},
	{"REX", Category{ID: "rex", Name: "Regionálny expres", Color: "#ff9800", Visible: true}},
	{"RJX", Category{ID: "rjx", Name: "Railjet xpress", Color: "#b71c1c", Visible: true}},
	{"R", Category{ID: "r", Name: "Rýchlik", Color: "#f44336", Visible: true}},
	{"Ex", Category{ID: "ex", Name: "Expres", Color: "#9c27b0", Visible: true}},
	{"IC", Category{ID: "ic", Name: "InterCity", Color: "#3f51b5", Visible: true}},
	{"SC", Category{ID: "sc", Name: "SuperCity", Color: "#00bcd4", Visible: true}},
	{"EN", Category{ID: "en", Name: "EuroNight", Color: "#212121", Visible: true}},
	{"EC", Category{ID: "ec", Name: "EuroCity", Color: "#2196f3", Visible: true}},
}

// CategoryOf classifies a train short name.
func CategoryOf(shortName string) Category {
	for _, rule := range categoryRules {
		if strings.HasPrefix(shortName, rule.prefix) {
			return rule.category
		}
	}
	return Unknown
}

// Categories lists every category including Unknown, in table order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.category)
	}
	return append(out, Unknown)
}
