package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color with 0-255 channels.
type Color struct {
	R, G, B int
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"darkblue":    {0, 0, 139},
	"navy":        {0, 0, 128},
	"lightblue":   {173, 216, 230},
	"aliceblue":   {240, 248, 255},
	"lightgrey":   {211, 211, 211},
	"lightgray":   {211, 211, 211},
	"grey":        {128, 128, 128},
	"gray":        {128, 128, 128},
	"lightyellow": {255, 255, 224},
	"whitesmoke":  {245, 245, 245},
	"red":         {255, 0, 0},
}

// ParseColor parses #RRGGBB, #RGB, rgb(r, g, b) or a named color.
func ParseColor(value string) (Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(value, "#") {
		r, g, b, ok := parseHexColor(value)
		return Color{r, g, b}, ok
	}

	var r, g, b int
	compact := strings.ReplaceAll(value, " ", "")
	if _, err := fmt.Sscanf(compact, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return Color{clamp(r), clamp(g), clamp(b)}, true
	}

	c, ok := namedColors[value]
	return c, ok
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return v
}
