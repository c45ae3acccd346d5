// Package style resolves presentation properties for document blocks. Blocks are styled
// by role ("title", "service-header", ...) through CSS-syntax theme stylesheets; the
// universal selector "*" provides the base every role inherits.
package style

import (
	"strconv"
	"strings"
)

// Property is a resolved declaration value.
type Property struct {
	Value     string
	Important bool
}

// Props is the computed property set of a role.
type Props map[string]Property

// Theme holds stylesheets in cascade order: later sheets override earlier ones.
type Theme struct {
	sheets []*Stylesheet
}

// NewTheme creates a theme from stylesheets in cascade order.
func NewTheme(sheets ...*Stylesheet) *Theme {
	return &Theme{sheets: sheets}
}

// AddStylesheet appends a stylesheet with higher precedence than those already added.
func (t *Theme) AddStylesheet(sheet *Stylesheet) {
	t.sheets = append(t.sheets, sheet)
}

type candidate struct {
	prop        Property
	specificity int
	order       int
}

// Lookup computes the properties for a block styled under roles. Later roles are more
// specific than earlier ones, and every role is more specific than "*".
func (t *Theme) Lookup(roles ...string) Props {
	best := make(map[string]candidate)
	order := 0

	for _, sheet := range t.sheets {
		for _, rule := range sheet.Rules {
			score := ruleSpecificity(rule, roles)
			if score < 0 {
				continue
			}
			for _, decl := range rule.Declarations {
				order++
				c := candidate{prop: Property{Value: decl.Value, Important: decl.Important}, specificity: score, order: order}
				if cur, ok := best[decl.Property]; !ok || wins(c, cur) {
					best[decl.Property] = c
				}
			}
		}
	}

	props := make(Props, len(best))
	for name, c := range best {
		props[name] = c.prop
	}
	return props
}

// ruleSpecificity returns the highest specificity with which rule matches roles, or -1.
func ruleSpecificity(rule *Rule, roles []string) int {
	score := -1
	for _, sel := range rule.Selectors {
		if sel == "*" && score < 0 {
			score = 0
			continue
		}
		for i, role := range roles {
			if sel == role && i+1 > score {
				score = i + 1
			}
		}
	}
	return score
}

func wins(a, b candidate) bool {
	if a.prop.Important != b.prop.Important {
		return a.prop.Important
	}
	if a.specificity != b.specificity {
		return a.specificity > b.specificity
	}
	return a.order > b.order
}

// String returns the value of name or def.
func (p Props) String(name, def string) string {
	if v, ok := p[name]; ok && v.Value != "" {
		return v.Value
	}
	return def
}

// Float returns the numeric value of name, accepting pt and px suffixes.
func (p Props) Float(name string, def float64) float64 {
	v, ok := p[name]
	if !ok {
		return def
	}
	return parseLength(v.Value, def)
}

// Color returns the color value of name.
func (p Props) Color(name string) (Color, bool) {
	v, ok := p[name]
	if !ok {
		return Color{}, false
	}
	return ParseColor(v.Value)
}

func parseLength(value string, def float64) float64 {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.TrimSuffix(strings.TrimSuffix(value, "pt"), "px")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return f
}
