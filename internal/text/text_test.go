package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// monospace measures every rune as 6pt.
func monospace(s string) float64 { return float64(utf8.RuneCountInString(s)) * 6 }

func TestCurrencyFormat(t *testing.T) {
	zar := Currency{Symbol: "R", Code: "ZAR"}
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R 0.00"},
		{"350", "R 350.00"},
		{"2100", "R 2,100.00"},
		{"1234567.891", "R 1,234,567.89"},
		{"999.995", "R 1,000.00"},
		{"0.005", "R 0.01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zar.Format(decimal.RequireFromString(tt.in)), tt.in)
	}

	assert.Equal(t, "2,100.00", Currency{}.Format(decimal.NewFromInt(2100)))
	assert.Equal(t, "-1,500.50", FormatNumber(decimal.RequireFromString("-1500.5"), 2))
}

func TestCurrencyFormat_BeyondInt64(t *testing.T) {
	zar := Currency{Symbol: "R"}
	assert.Equal(t, "R 9,223,372,036,854,775,807.00", zar.Format(decimal.RequireFromString("9223372036854775807")))
	assert.Equal(t, "R 9,223,372,036,854,775,808.50", zar.Format(decimal.RequireFromString("9223372036854775808.50")))
	assert.Equal(t, "R 35,000,000,000,000,000,000,000.00", zar.Format(decimal.RequireFromString("1e20").Mul(decimal.NewFromInt(350))))
	assert.Equal(t, "-123,456,789,012,345,678,901.00", FormatNumber(decimal.RequireFromString("-123456789012345678901"), 2))
	assert.Equal(t, "100", groupThousands("100"))
	assert.Equal(t, "1,000", groupThousands("1000"))
}

func TestCurrencyLabel(t *testing.T) {
	assert.Equal(t, "Rate (ZAR)", Currency{Code: "ZAR"}.Label("Rate"))
	assert.Equal(t, "Rate", Currency{}.Label("Rate"))
}

func TestFormatQuantityAndPercent(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(decimal.NewFromFloat(2)))
	assert.Equal(t, "1.5", FormatQuantity(decimal.NewFromFloat(1.5)))
	assert.Equal(t, "15%", FormatPercent(decimal.RequireFromString("0.15")))
	assert.Equal(t, "12.5%", FormatPercent(decimal.RequireFromString("0.125")))
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"Hello", " ", "big", " ", "world"}, SplitTokens("Hello  big\tworld"))
	assert.Equal(t, []string{" ", "lead", " "}, SplitTokens("  lead  "))
	assert.Nil(t, SplitTokens(""))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, " a b c ", NormalizeWhitespace("  a \n b\t\tc "))
	assert.True(t, IsAllSpace(" \t\n"))
	assert.False(t, IsAllSpace(" x "))
}

func TestSplitTextToLines(t *testing.T) {
	lines := SplitTextToLines("Payment is due within five days of invoice date", monospace, 60)
	assert.Equal(t, []string{"Payment is", "due within", "five days", "of invoice", "date"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, monospace(l), 60.0)
	}

	assert.Equal(t, []string{"no limit here"}, SplitTextToLines("no   limit here", monospace, 0))
	assert.Nil(t, SplitTextToLines("   ", monospace, 60))
}

func TestSplitTextToLines_LongWord(t *testing.T) {
	lines := SplitTextToLines("x Supercalifragilistic y", monospace, 30)
	assert.Equal(t, "x", lines[0])
	assert.Equal(t, "Super", lines[1])
	assert.Equal(t, "y", lines[len(lines)-1])
	assert.Equal(t, "Supercalifragilistic", strings.Join(lines[1:len(lines)-1], ""))
}

func TestBreakWord_NarrowerThanRune(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, BreakWord("abc", monospace, 2))
}
