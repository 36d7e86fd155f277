package linespec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// Property is one of the five stylable properties of a curve.
type Property int

// Stylable properties.
const (
	LineStyle Property = iota
	LineWidth
	Marker
	MarkerSize
	Color
)

var propertyNames = [...]string{
	LineStyle:  "linestyle",
	LineWidth:  "linewidth",
	Marker:     "marker",
	MarkerSize: "markersize",
	Color:      "color",
}

// String returns the canonical lowercase property name.
func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "Property(" + strconv.Itoa(int(p)) + ")"
	}
	return propertyNames[p]
}

func (p Property) valid() bool {
	return p >= LineStyle && p <= Color
}

var propertyAliases = map[string]Property{
	"linestyle":  LineStyle,
	"ls":         LineStyle,
	"linewidth":  LineWidth,
	"lw":         LineWidth,
	"width":      LineWidth,
	"marker":     Marker,
	"m":          Marker,
	"markersize": MarkerSize,
	"ms":         MarkerSize,
	"size":       MarkerSize,
	"color":      Color,
	"colour":     Color,
	"c":          Color,
}

// ParseProperty resolves a property name or alias, case-insensitively.
func ParseProperty(name string) (Property, error) {
	p, ok := propertyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidProperty, "invalid line property: %q", name)
	}
	return p, nil
}

type valueKind uint8

const (
	kindText valueKind = iota
	kindNumber
)

// Value is a property value as supplied by the caller: either text or a number.
// The zero Value is the empty text.
type Value struct {
	kind valueKind
	text string
	num  float64
}

// Text returns a textual Value. Numeric properties parse it when it is set.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Number returns a numeric Value. Textual properties receive it formatted with %g.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// IsNumber reports whether the value was supplied as a number.
func (v Value) IsNumber() bool { return v.kind == kindNumber }

// String returns the textual form of the value.
func (v Value) String() string {
	if v.kind == kindNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.text
}

// float returns the numeric form of the value.
func (v Value) float() (float64, bool) {
	if v.kind == kindNumber {
		return v.num, true
	}
	return parseDecimal(strings.TrimSpace(v.text))
}

// decimalRegex matches plain decimal numbers with an optional exponent.
// Digit separators, hex floats, Inf and NaN are not decimals.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseDecimal parses s as a plain decimal number.
func parseDecimal(s string) (float64, bool) {
	if !decimalRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Pair is a single property assignment.
type Pair struct {
	Property Property
	Value    Value
}

// P builds a Pair from a textual value, the common case for bulk input.
func P(p Property, text string) Pair {
	return Pair{Property: p, Value: Text(text)}
}
