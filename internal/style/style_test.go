package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseSheet = `
/* base */
* { font-family: Helvetica; font-size: 10; color: #000 }
title { font-size: 28pt; font-weight: bold; color: darkblue; text-align: center }
heading, party-header { font-weight: bold; color: darkblue }
bill-to { border-color: darkblue; border-width: 2 }
`

func parse(t *testing.T, s string) *Stylesheet {
	t.Helper()
	sheet, err := NewParser().ParseString(s)
	require.NoError(t, err)
	return sheet
}

func TestParse(t *testing.T) {
	sheet := parse(t, baseSheet)
	require.Len(t, sheet.Rules, 4)

	assert.Equal(t, []string{"*"}, sheet.Rules[0].Selectors)
	assert.Equal(t, []string{"heading", "party-header"}, sheet.Rules[2].Selectors)
	assert.Equal(t, &Declaration{Property: "font-size", Value: "28pt"}, sheet.Rules[1].Declarations[0])
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		"title { font-size 12 }",
		"title { font-size: 12",
		"title { x: 1 } }",
		"{ color: red }",
		"title { a { b: c } }",
		"title { color: red } stray",
		"title { color: }",
	} {
		_, err := NewParser().ParseString(in)
		assert.ErrorIs(t, err, ErrSyntax, in)
	}
}

func TestTheme_Lookup(t *testing.T) {
	theme := NewTheme(parse(t, baseSheet))

	title := theme.Lookup("title")
	assert.Equal(t, 28.0, title.Float("font-size", 0))
	assert.Equal(t, "Helvetica", title.String("font-family", ""))
	assert.Equal(t, "center", title.String("text-align", "left"))
	c, ok := title.Color("color")
	require.True(t, ok)
	assert.Equal(t, Color{0, 0, 139}, c)

	plain := theme.Lookup("terms")
	assert.Equal(t, 10.0, plain.Float("font-size", 0))
	assert.Equal(t, "left", plain.String("text-align", "left"))
}

func TestTheme_RoleOrderAndOverrides(t *testing.T) {
	theme := NewTheme(parse(t, baseSheet))
	theme.AddStylesheet(parse(t, `
		party-header { color: #ff0000 }
		bill-to { color: white !important }
		* { font-size: 11 }
	`))

	// later role wins over earlier role
	props := theme.Lookup("party-header", "bill-to")
	assert.Equal(t, "2", props.String("border-width", ""))
	c, _ := props.Color("color")
	assert.Equal(t, White, c)

	// user sheet overrides default for the same selector
	assert.Equal(t, 11.0, theme.Lookup("terms").Float("font-size", 0))
	// a role rule beats a later universal rule
	assert.Equal(t, 28.0, theme.Lookup("title").Float("font-size", 0))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#1f2937", Color{31, 41, 55}, true},
		{"#FFF", White, true},
		{"rgb(10, 20, 30)", Color{10, 20, 30}, true},
		{"rgb(300,-1,5)", Color{255, 0, 5}, true},
		{"AliceBlue", Color{240, 248, 255}, true},
		{"#12", Color{}, false},
		{"#zzzzzz", Color{}, false},
		{"chartreuse-ish", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
