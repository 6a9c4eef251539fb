// Package catalog holds the fixed table of measurement categories offered to
// users, each with an ordered list of units. The table is built at package
// initialization and never mutated; every accessor returns copies.
package catalog

import "strings"

// Unit is a user-facing unit: a display label and the identifier understood
// by the units registry.
type Unit struct {
	Label      string `json:"label"`
	Identifier string `json:"identifier"`
}

// Category is a named, ordered set of units of one physical kind.
type Category struct {
	Name  string `json:"name"`
	Units []Unit `json:"units"`
}

var categories = []Category{
	{
		Name: "Length",
		Units: []Unit{
			{"Meter (m)", "meter"},
			{"Kilometer (km)", "kilometer"},
			{"Mile (mi)", "mile"},
			{"Yard (yd)", "yard"},
			{"Foot (ft)", "foot"},
			{"Inch (in)", "inch"},
		},
	},
	{
		Name: "Mass",
		Units: []Unit{
			{"Kilogram (kg)", "kilogram"},
			{"Gram (g)", "gram"},
			{"Pound (lb)", "pound"},
			{"Ounce (oz)", "ounce"},
		},
	},
	{
		Name: "Temperature",
		Units: []Unit{
			{"Celsius (°C)", "degC"},
			{"Fahrenheit (°F)", "degF"},
			{"Kelvin (K)", "kelvin"},
		},
	},
	{
		Name: "Volume",
		Units: []Unit{
			{"Liter (L)", "liter"},
			{"Milliliter (mL)", "milliliter"},
			{"Gallon (gal)", "gallon"},
			{"Quart (qt)", "quart"},
			{"Pint (pt)", "pint"},
		},
	},
	{
		Name: "Time",
		Units: []Unit{
			{"Second (s)", "second"},
			{"Minute (min)", "minute"},
			{"Hour (h)", "hour"},
			{"Day (d)", "day"},
			{"Week (wk)", "week"},
			{"Month (mo)", "month"},
			{"Year (yr)", "year"},
		},
	},
	{
		Name: "Area",
		Units: []Unit{
			{"Square Meter (m²)", "meter**2"},
			{"Hectare (ha)", "hectare"},
			{"Acre (ac)", "acre"},
		},
	},
	{
		Name: "Speed",
		Units: []Unit{
			{"Meter/Second (m/s)", "meter/second"},
			{"Kilometer/Hour (km/h)", "kilometer/hour"},
			{"Mile/Hour (mph)", "mile/hour"},
		},
	},
}

// Names returns the category names in display order.
func Names() []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

// All returns a copy of every category in display order.
func All() []Category {
	ret := make([]Category, 0, len(categories))
	for _, c := range categories {
		ret = append(ret, c.clone())
	}
	return ret
}

// Get returns the category with the given name, matched case-insensitively.
func Get(name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.clone(), true
		}
	}
	return Category{}, false
}

// Lookup resolves a unit inside a category by its label or its identifier.
func (c Category) Lookup(labelOrIdentifier string) (Unit, bool) {
	for _, u := range c.Units {
		if u.Label == labelOrIdentifier || u.Identifier == labelOrIdentifier {
			return u, true
		}
	}
	return Unit{}, false
}

// Find returns the first category containing a unit with the given label or
// identifier.
func Find(labelOrIdentifier string) (Category, Unit, bool) {
	for _, c := range categories {
		if u, ok := c.Lookup(labelOrIdentifier); ok {
			return c.clone(), u, true
		}
	}
	return Category{}, Unit{}, false
}

// Label returns the display label for an identifier, or the identifier itself
// if it is not in the catalog.
func Label(identifier string) string {
	if _, u, ok := Find(identifier); ok {
		return u.Label
	}
	return identifier
}

func (c Category) clone() Category {
	units := make([]Unit, len(c.Units))
	copy(units, c.Units)
	return Category{Name: c.Name, Units: units}
}
