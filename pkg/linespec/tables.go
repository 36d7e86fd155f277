package linespec

import "sort"

// Family identifies a group of gnuplot terminals that share the same dash
// patterns and marker glyphs.
type Family int

// Terminal families known to eggplot.
const (
	FamilyAqua Family = iota
	FamilyWxt
	FamilyCairo
	FamilySVG
	FamilyCanvas
	FamilyOther
)

var familyNames = map[Family]string{
	FamilyAqua:   "aqua",
	FamilyWxt:    "wxt",
	FamilyCairo:  "cairo",
	FamilySVG:    "svg",
	FamilyCanvas: "canvas",
	FamilyOther:  "other",
}

// String returns the gnuplot terminal name probed for the family.
func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

// Families lists every family in declaration order.
func Families() []Family {
	return []Family{FamilyAqua, FamilyWxt, FamilyCairo, FamilySVG, FamilyCanvas, FamilyOther}
}

// ParseFamily maps a terminal name back to its family.
func ParseFamily(name string) (Family, bool) {
	for f, s := range familyNames {
		if s == name {
			return f, true
		}
	}
	return FamilyOther, false
}

// Tables pairs the line-style and marker code tables of one terminal family.
// The three package-level values are built once and shared by every render;
// they must not be modified.
type Tables struct {
	name       string
	lineStyles map[string]int
	markers    map[string]int
}

// Name returns a short label for the table pair, e.g. "aqua".
func (t *Tables) Name() string { return t.name }

// LineStyleCode returns the gnuplot line type for a line-style token.
func (t *Tables) LineStyleCode(token string) (int, bool) {
	code, ok := t.lineStyles[token]
	return code, ok
}

// MarkerCode returns the gnuplot point type for a marker token.
func (t *Tables) MarkerCode(token string) (int, bool) {
	code, ok := t.markers[token]
	return code, ok
}

// MarkerGlyphs returns the number of distinct non-empty glyphs in the table.
func (t *Tables) MarkerGlyphs() int {
	seen := make(map[int]bool)
	for _, code := range t.markers {
		if code != 0 {
			seen[code] = true
		}
	}
	return len(seen)
}

var (
	lineStylesAqua = map[string]int{
		"-":    1,
		"--":   2,
		":":    4,
		"-.":   5,
		"none": 0,
	}

	lineStylesOther = map[string]int{
		"-":    1,
		"--":   2,
		":":    3,
		"-.":   4,
		"none": 0,
	}

	// aqua only draws six glyphs
	markersAqua = map[string]int{
		"o":         5,
		"+":         1,
		"*":         3,
		".":         5,
		"x":         2,
		"s":         4,
		"square":    4,
		"d":         5,
		"diamond":   5,
		"^":         6,
		"v":         6,
		">":         6,
		"<":         6,
		"p":         5,
		"pentagram": 5,
		"h":         5,
		"hexagram":  5,
		"none":      0,
	}

	markersCanvas = map[string]int{
		"o":         6,
		"+":         1,
		"*":         3,
		".":         7,
		"x":         2,
		"s":         4,
		"square":    4,
		"d":         5,
		"diamond":   5,
		"^":         8,
		"v":         9,
		">":         8,
		"<":         9,
		"p":         4,
		"pentagram": 4,
		"h":         8,
		"hexagram":  8,
		"none":      0,
	}

	markersOther = map[string]int{
		"o":         6,
		"+":         1,
		"*":         3,
		".":         7,
		"x":         2,
		"s":         4,
		"square":    4,
		"d":         12,
		"diamond":   12,
		"^":         8,
		"v":         10,
		">":         9,
		"<":         11,
		"p":         5,
		"pentagram": 5,
		"h":         13,
		"hexagram":  13,
		"none":      0,
	}
)

// Table pairs for each rendering back end.
var (
	AquaTables   = &Tables{name: "aqua", lineStyles: lineStylesAqua, markers: markersAqua}
	CanvasTables = &Tables{name: "canvas", lineStyles: lineStylesOther, markers: markersCanvas}
	OtherTables  = &Tables{name: "other", lineStyles: lineStylesOther, markers: markersOther}
)

// TablesFor returns the table pair used by a family. Wxt, cairo and svg
// share the generic tables.
func TablesFor(f Family) *Tables {
	switch f {
	case FamilyAqua:
		return AquaTables
	case FamilyCanvas:
		return CanvasTables
	default:
		return OtherTables
	}
}

// GridLineType returns the dotted line type of the family, used for grid lines.
func GridLineType(f Family) int {
	code, _ := TablesFor(f).LineStyleCode(":")
	return code
}

// GridColor is the colour of grid lines.
const GridColor = "#cccccc"

// Palette is the default colour cycle. Curve i gets Palette[(i-1) % 10].
var Palette = [...]string{
	"#f00032", // red
	"#227500", // green
	"#1a3bea", // blue
	"#e700f0", // magenta
	"#00beb1", // cyan
	"#8b4513", // brown
	"#f0c000", // yellow
	"#808000", // olive
	"#505050", // gray
	"#6b00d2", // purple
}

// DefaultColor returns the palette colour of a 1-based line index.
func DefaultColor(lineIndex int) string {
	n := len(Palette)
	i := (lineIndex - 1) % n
	if i < 0 {
		i += n
	}
	return Palette[i]
}

var shortcuts = map[rune]string{
	'y': "yellow",
	'm': "magenta",
	'c': "cyan",
	'r': "red",
	'g': "green",
	'b': "blue",
	'w': "white",
	'k': "black",
}

// Shortcut expands a single-letter colour shortcut.
func Shortcut(r rune) (string, bool) {
	name, ok := shortcuts[r]
	return name, ok
}

// LineStyleTokens lists the recognised line-style tokens.
func LineStyleTokens() []string {
	return []string{"-", "--", ":", "-.", "none"}
}

// MarkerTokens lists the recognised marker tokens, sorted.
func MarkerTokens() []string {
	tokens := make([]string, 0, len(markersOther))
	for k := range markersOther {
		tokens = append(tokens, k)
	}
	sort.Strings(tokens)
	return tokens
}
