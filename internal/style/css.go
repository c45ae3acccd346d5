package style

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSyntax is returned for stylesheet text that does not parse.
var ErrSyntax = errors.New("stylesheet syntax error")

// Parser parses theme stylesheets: CSS rule syntax whose selectors are block roles.
type Parser struct{}

// Rule is one selector group with its declarations.
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
}

// Declaration is a property-value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet is a parsed theme stylesheet.
type Stylesheet struct {
	Rules []*Rule
}

// NewParser creates a new stylesheet parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses a stylesheet from a string
func (p *Parser) ParseString(content string) (*Stylesheet, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses a stylesheet from an io.Reader. Unlike a browser, it fails on the first
// malformed rule instead of skipping it.
func (p *Parser) Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content = []byte(removeComments(string(content)))
	ruleStrings, err := splitRules(string(content))
	if err != nil {
		return nil, err
	}

	sheet := &Stylesheet{Rules: make([]*Rule, 0, len(ruleStrings))}
	for _, ruleStr := range ruleStrings {
		rule, err := parseRule(ruleStr)
		if err != nil {
			return nil, err
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
	return sheet, nil
}

func parseRule(ruleStr string) (*Rule, error) {
	selectorStr, body, ok := strings.Cut(ruleStr, "{")
	if !ok {
		return nil, fmt.Errorf("%w: missing '{' in %q", ErrSyntax, ruleStr)
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "}")

	selectors := parseSelectors(selectorStr)
	if len(selectors) == 0 {
		return nil, fmt.Errorf("%w: rule without selector", ErrSyntax)
	}

	decls, err := parseDeclarations(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.Join(selectors, ", "), err)
	}
	return &Rule{Selectors: selectors, Declarations: decls}, nil
}

func parseSelectors(selectorStr string) []string {
	parts := strings.Split(selectorStr, ",")
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func parseDeclarations(body string) ([]*Declaration, error) {
	parts := strings.Split(body, ";")
	result := make([]*Declaration, 0, len(parts))

	for _, declStr := range parts {
		declStr = strings.TrimSpace(declStr)
		if declStr == "" {
			continue
		}

		property, value, ok := strings.Cut(declStr, ":")
		if !ok {
			return nil, fmt.Errorf("%w: declaration %q has no value", ErrSyntax, declStr)
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)

		important := false
		if strings.HasSuffix(value, "!important") {
			important = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		}
		if property == "" || value == "" {
			return nil, fmt.Errorf("%w: empty property or value in %q", ErrSyntax, declStr)
		}

		result = append(result, &Declaration{Property: property, Value: value, Important: important})
	}
	return result, nil
}

// removeComments removes /* */ comments. An unterminated comment swallows the rest.
func removeComments(content string) string {
	var result strings.Builder
	i := 0
	for i < len(content) {
		if i+1 < len(content) && content[i] == '/' && content[i+1] == '*' {
			end := strings.Index(content[i+2:], "*/")
			if end == -1 {
				break
			}
			i += end + 4
			continue
		}
		result.WriteByte(content[i])
		i++
	}
	return result.String()
}

// splitRules splits content into "selector { body }" strings.
func splitRules(content string) ([]string, error) {
	var rules []string
	var current strings.Builder
	depth := 0

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch c {
		case '{':
			depth++
			if depth > 1 {
				return nil, fmt.Errorf("%w: nested blocks are not supported", ErrSyntax)
			}
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected '}'", ErrSyntax)
			}
			current.WriteByte(c)
			rules = append(rules, current.String())
			current.Reset()
			continue
		}
		if depth > 0 || !isWhitespace(c) || current.Len() > 0 {
			current.WriteByte(c)
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed '{'", ErrSyntax)
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		return nil, fmt.Errorf("%w: trailing text %q", ErrSyntax, rest)
	}
	return rules, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
