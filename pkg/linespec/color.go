package linespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// channelEpsilon keeps the fractional value 1.0 at channel 255 instead of 256.
const channelEpsilon = 0.001

// ResolveColor converts a colour spec into the text placed after "lc rgb".
//
// Accepted forms, after whitespace is removed:
//
//	"r"               single-letter shortcut (ymcrgbwk)
//	"[1.0, 0.5, 0]"   fractional triple, each component in [0,1]
//	"(255, 128, 0)"   integer triple, each component in [0,255]
//	"red", "#ff0030"  anything else is passed through unchanged
func ResolveColor(spec string) (string, error) {
	color := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, spec)

	if color == "" {
		return "", errors.New(errors.ErrCodeInvalidColor,
			"Color format must be a name, shortcut, hex code '#rrggbb', '[r,g,b]' or '(r,g,b)'")
	}

	if utf8.RuneCountInString(color) == 1 {
		r, _ := utf8.DecodeRuneInString(color)
		name, ok := Shortcut(r)
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidColor,
				"Color shortcut must be one of ymcrgbwk (got %q)", color)
		}
		return name, nil
	}

	switch color[0] {
	case '[':
		return fractionalTriple(color)
	case '(':
		return integerTriple(color)
	default:
		return color, nil
	}
}

// splitTriple strips the enclosing brackets and splits on commas.
func splitTriple(color string, open, close byte) ([]string, error) {
	if strings.Count(color, ",") != 2 {
		return nil, errors.New(errors.ErrCodeInvalidColor,
			"Bracketed color triples must contain exactly two commas, \"[r,g,b]\" or \"(r,g,b)\": %s", color)
	}
	if color[len(color)-1] != close {
		return nil, errors.New(errors.ErrCodeInvalidColor,
			"color triple starting with %q must end with %q: %s", open, close, color)
	}
	return strings.Split(color[1:len(color)-1], ","), nil
}

func fractionalTriple(color string) (string, error) {
	parts, err := splitTriple(color, '[', ']')
	if err != nil {
		return "", err
	}
	var rgb [3]int
	for i, s := range parts {
		f, ok := parseDecimal(s)
		if !ok || f < 0 || f > 1 {
			return "", errors.New(errors.ErrCodeInvalidColor,
				"Bracketed color triples must be in decimals within 0.0-1.0: %q", s)
		}
		rgb[i] = max(0, int(math.Floor(f*256-channelEpsilon)))
	}
	return hexColor(rgb), nil
}

func integerTriple(color string) (string, error) {
	parts, err := splitTriple(color, '(', ')')
	if err != nil {
		return "", err
	}
	var rgb [3]int
	for i, s := range parts {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 255 {
			return "", errors.New(errors.ErrCodeInvalidColor,
				"Parenthesized color triples must be in integers within 0-255: %q", s)
		}
		rgb[i] = n
	}
	return hexColor(rgb), nil
}

func hexColor(rgb [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
