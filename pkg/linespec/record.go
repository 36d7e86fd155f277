package linespec

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// Record holds the resolved style of one curve.
type Record struct {
	index      int
	lineStyle  string
	lineWidth  float64
	marker     string
	markerSize float64
	color      string
}

// NewRecord returns a record with the defaults for a 1-based line index:
// solid line, width 1, marker chosen by index, size 1 and the palette colour.
func NewRecord(index int) *Record {
	return &Record{
		index:      index,
		lineStyle:  "-",
		lineWidth:  1,
		marker:     "",
		markerSize: 1,
		color:      DefaultColor(index),
	}
}

// Index returns the 1-based line index.
func (r *Record) Index() int { return r.index }

// LineStyle returns the line-style token.
func (r *Record) LineStyle() string { return r.lineStyle }

// LineWidth returns the line width.
func (r *Record) LineWidth() float64 { return r.lineWidth }

// Marker returns the marker token. Empty means the line index is the glyph code.
func (r *Record) Marker() string { return r.marker }

// MarkerSize returns the marker size.
func (r *Record) MarkerSize() float64 { return r.markerSize }

// Color returns the colour spec exactly as set.
func (r *Record) Color() string { return r.color }

// IsPointOnly reports whether the curve is drawn without connecting lines.
func (r *Record) IsPointOnly() bool { return r.lineStyle == "none" }

// Set assigns one property. The record is left untouched on error.
//
// LineStyle and Color reject empty text. LineWidth and MarkerSize must be
// numeric; negative values are clamped to zero. Marker text is stored as
// given because its validity depends on the terminal it is rendered for.
func (r *Record) Set(p Property, v Value) error {
	switch p {
	case LineStyle:
		s := v.String()
		if s == "" {
			return errors.New(errors.ErrCodeInvalidValue, "LineStyle cannot be empty")
		}
		r.lineStyle = s
	case LineWidth:
		f, err := parseSize(p, v)
		if err != nil {
			return err
		}
		r.lineWidth = f
	case Marker:
		r.marker = v.String()
	case MarkerSize:
		f, err := parseSize(p, v)
		if err != nil {
			return err
		}
		r.markerSize = f
	case Color:
		s := v.String()
		if s == "" {
			return errors.New(errors.ErrCodeInvalidValue, "Color spec cannot be empty")
		}
		r.color = s
	default:
		return errors.New(errors.ErrCodeInvalidProperty, "invalid line property: %s", p)
	}
	return nil
}

// SetPair assigns a single property/value pair.
func (r *Record) SetPair(pair Pair) error {
	return r.Set(pair.Property, pair.Value)
}

func parseSize(p Property, v Value) (float64, error) {
	f, ok := v.float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		name := "LineWidth"
		if p == MarkerSize {
			name = "MarkerSize"
		}
		return 0, errors.New(errors.ErrCodeInvalidValue, "%s must be numeric, got %q", name, v.String())
	}
	if f < 0 {
		f = 0
	}
	return f, nil
}

// Render returns the gnuplot "set style line" command of the record for the
// given terminal tables. It never modifies the record.
func (r *Record) Render(t *Tables) (string, error) {
	lt, ok := t.LineStyleCode(r.lineStyle)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidLineStyle,
			"LineStyle must be one of -, --, :, -., none (got %q)", r.lineStyle)
	}

	pt := r.index
	if r.marker != "" {
		pt, ok = t.MarkerCode(r.marker)
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidMarker,
				"Marker must be one of o+*.xsd^v><ph or none (got %q)", r.marker)
		}
	}

	color, err := ResolveColor(r.color)
	if err != nil {
		return "", err
	}

	parts := []string{
		"set style line", strconv.Itoa(r.index),
		"lt", strconv.Itoa(lt),
		"lw", formatSig3(r.lineWidth),
		"pt", strconv.Itoa(pt),
		"ps", formatSig3(r.markerSize),
		"lc rgb", "'" + color + "'",
	}
	return strings.Join(parts, " "), nil
}

// formatSig3 formats with three significant digits, trailing zeros dropped.
func formatSig3(f float64) string {
	return strconv.FormatFloat(f, 'g', 3, 64)
}
