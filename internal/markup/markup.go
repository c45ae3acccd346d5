// Package markup parses the small inline markup accepted in prose fields: <b>/<strong>,
// <i>/<em> and <br>. Anything else is rejected so that typos surface as render errors
// instead of literal tags on the page.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrUnsupportedTag is returned for any tag outside the inline set.
	ErrUnsupportedTag = errors.New("unsupported tag")
	// ErrUnbalanced is returned for a closing tag without its opener or an unclosed tag.
	ErrUnbalanced = errors.New("unbalanced markup")
)

// Run is a span of text sharing one inline style. A run with Break set ends the line.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Break  bool
}

// Parser tokenizes inline markup.
type Parser struct{}

// NewParser creates a markup parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses markup from a string.
func (p *Parser) ParseString(content string) ([]Run, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse tokenizes r into runs. Entities are decoded; whitespace is left for the layout
// to collapse.
func (p *Parser) Parse(r io.Reader) ([]Run, error) {
	z := html.NewTokenizer(r)
	var runs []Run
	bold, italic := 0, 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			if bold > 0 || italic > 0 {
				return nil, fmt.Errorf("%w: unclosed tag", ErrUnbalanced)
			}
			return runs, nil

		case html.TextToken:
			t := string(z.Text())
			if t == "" {
				continue
			}
			runs = appendText(runs, Run{Text: t, Bold: bold > 0, Italic: italic > 0})

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); tag {
			case "br":
				runs = append(runs, Run{Break: true})
			case "b", "strong":
				if tt == html.StartTagToken {
					bold++
				}
			case "i", "em":
				if tt == html.StartTagToken {
					italic++
				}
			default:
				return nil, fmt.Errorf("%w: <%s>", ErrUnsupportedTag, tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch tag := string(name); tag {
			case "b", "strong":
				if bold == 0 {
					return nil, fmt.Errorf("%w: </%s>", ErrUnbalanced, tag)
				}
				bold--
			case "i", "em":
				if italic == 0 {
					return nil, fmt.Errorf("%w: </%s>", ErrUnbalanced, tag)
				}
				italic--
			case "br":
				runs = append(runs, Run{Break: true})
			default:
				return nil, fmt.Errorf("%w: </%s>", ErrUnsupportedTag, tag)
			}

		case html.CommentToken, html.DoctypeToken:
			return nil, fmt.Errorf("%w: comment or doctype", ErrUnsupportedTag)
		}
	}
}

// appendText merges t into the previous run when the styles match.
func appendText(runs []Run, t Run) []Run {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if !last.Break && last.Bold == t.Bold && last.Italic == t.Italic {
			last.Text += t.Text
			return runs
		}
	}
	return append(runs, t)
}

// Plain returns the text of runs with breaks as newlines.
func Plain(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}
