package units

import (
	"sort"
	"strings"
	"sync"
)

// Definition describes a named unit in terms of the SI base of its dimension.
type Definition struct {
	Name       string
	Symbols    []string
	Aliases    []string
	Scale      float64
	Offset     float64
	Dim        Dimension
	Prefixable bool
}

type prefix struct {
	name   string
	symbol string
	factor float64
}

// "da" must be tried before "d" so that "dam" resolves to decameter.
var prefixes = []prefix{
	{"tera", "T", 1e12},
	{"giga", "G", 1e9},
	{"mega", "M", 1e6},
	{"kilo", "k", 1e3},
	{"hecto", "h", 1e2},
	{"deca", "da", 1e1},
	{"deci", "d", 1e-1},
	{"centi", "c", 1e-2},
	{"milli", "m", 1e-3},
	{"micro", "µ", 1e-6},
	{"micro", "u", 1e-6},
	{"nano", "n", 1e-9},
	{"pico", "p", 1e-12},
}

type entry struct {
	unit       Unit
	prefixable bool
	symbol     bool
}

// Registry resolves unit names and expressions. It is populated once by
// NewRegistry and is read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	entries   map[string]entry
	canonical []string
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry with the built-in definitions.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry returns a registry holding the built-in definitions plus any
// extra ones. Extra definitions override built-ins with the same names.
func NewRegistry(extra ...Definition) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
	}
	for _, d := range builtinDefinitions {
		r.define(d)
	}
	for _, d := range extra {
		r.define(d)
	}
	sort.Strings(r.canonical)
	return r
}

func (r *Registry) define(d Definition) {
	u := Unit{
		Name:   d.Name,
		Scale:  d.Scale,
		Offset: d.Offset,
		Dim:    d.Dim,
	}

	if _, exists := r.entries[d.Name]; !exists {
		r.canonical = append(r.canonical, d.Name)
	}
	r.entries[d.Name] = entry{unit: u, prefixable: d.Prefixable}
	for _, s := range d.Symbols {
		r.entries[s] = entry{unit: u, prefixable: d.Prefixable, symbol: true}
	}
	for _, a := range d.Aliases {
		r.entries[a] = entry{unit: u, prefixable: d.Prefixable}
	}
}

// Names returns the canonical names of all defined units, sorted.
func (r *Registry) Names() []string {
	ret := make([]string, len(r.canonical))
	copy(ret, r.canonical)
	return ret
}

// Lookup resolves a single unit name. Names are matched exactly first, then
// as an SI prefix plus a prefixable unit ("kilometer", "km"), then with a
// trailing plural "s" removed ("meters").
func (r *Registry) Lookup(name string) (Unit, error) {
	if u, ok := r.lookup(name); ok {
		return u, nil
	}
	if len(name) > 3 && strings.HasSuffix(name, "s") {
		if u, ok := r.lookup(strings.TrimSuffix(name, "s")); ok {
			u.Name = name
			return u, nil
		}
	}
	return Unit{}, &UndefinedUnitError{Name: name}
}

func (r *Registry) lookup(name string) (Unit, bool) {
	if e, ok := r.entries[name]; ok {
		return e.unit, true
	}

	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(name, p.name); ok && rest != "" {
			if e, ok := r.entries[rest]; ok && e.prefixable && !e.symbol {
				return prefixed(e.unit, name, p.factor), true
			}
		}
		if rest, ok := strings.CutPrefix(name, p.symbol); ok && rest != "" {
			if e, ok := r.entries[rest]; ok && e.prefixable && e.symbol {
				return prefixed(e.unit, name, p.factor), true
			}
		}
	}

	return Unit{}, false
}

func prefixed(u Unit, name string, factor float64) Unit {
	u.Name = name
	u.Scale *= factor
	return u
}

// Parse resolves a unit expression such as "meter", "meter**2",
// "kilometer / hour" or "kg m^2 / s^2".
func (r *Registry) Parse(expr string) (Unit, error) {
	p := &parser{expr: expr, reg: r}
	u, err := p.parse()
	if err != nil {
		return Unit{}, err
	}
	u.Name = strings.TrimSpace(expr)
	return u, nil
}

// Quantity parses expr and returns a quantity of v in that unit.
func (r *Registry) Quantity(v float64, expr string) (Quantity, error) {
	u, err := r.Parse(expr)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(v, u), nil
}
