package terminal

import (
	"fmt"

	"github.com/matzehuels/eggplot/pkg/linespec"
)

// Selection is the terminal setup for one target.
type Selection struct {
	Target Target
	// Terminal is the gnuplot terminal name, empty on fallback.
	Terminal string
	// Directive is the full "set terminal" line. It is empty when gnuplot
	// should keep its default terminal.
	Directive string
	// Comment is set on fallback selections.
	Comment string
	Tables  *linespec.Tables
	// Family selects the grid line type.
	Family   linespec.Family
	Fallback bool
}

// FallbackComment is written in place of a terminal directive when no
// supported terminal was found for target.
func FallbackComment(target Target) string {
	name := target.String()
	if target == Screen {
		name = "display"
	}
	return fmt.Sprintf("# No supported %s terminal found. Line styles may be not accurate.", name)
}

func chosen(t Target, term, directive string, fam linespec.Family) Selection {
	return Selection{
		Target:    t,
		Terminal:  term,
		Directive: directive,
		Tables:    linespec.TablesFor(fam),
		Family:    fam,
	}
}

func fallback(t Target, directive string) Selection {
	return Selection{
		Target:    t,
		Directive: directive,
		Comment:   FallbackComment(t),
		Tables:    linespec.OtherTables,
		Family:    linespec.FamilyOther,
		Fallback:  true,
	}
}

// Select picks the terminal for a single target from what c supports.
// Export targets without a cairo terminal fall back to gnuplot's built-in
// drivers, which still produce a file.
func Select(t Target, c Capabilities) Selection {
	switch t {
	case Screen:
		switch {
		case c.Aqua:
			return chosen(t, Aqua, "set terminal aqua dashed", linespec.FamilyAqua)
		case c.Wxt:
			return chosen(t, Wxt, "set terminal wxt dashed", linespec.FamilyWxt)
		}
		return fallback(t, "")
	case PNG:
		if c.Cairo {
			return chosen(t, "pngcairo", "set terminal pngcairo enhanced dashed", linespec.FamilyCairo)
		}
		return fallback(t, "set terminal png")
	case EPS:
		if c.Cairo {
			return chosen(t, "epscairo", "set terminal epscairo transparent color enhanced dashed", linespec.FamilyCairo)
		}
		return fallback(t, "set terminal postscript eps color dashed")
	case PDF:
		if c.Cairo {
			return chosen(t, "pdfcairo", "set terminal pdfcairo transparent color enhanced dashed", linespec.FamilyCairo)
		}
		return fallback(t, "set terminal pdf")
	case HTML:
		if c.Canvas {
			return chosen(t, Canvas, "set terminal canvas", linespec.FamilyCanvas)
		}
		return fallback(t, "")
	case SVG:
		if c.SVG {
			return chosen(t, SVGTerm, "set terminal svg", linespec.FamilySVG)
		}
		return fallback(t, "")
	}
	return fallback(t, "")
}

// SelectAll returns one selection per target in t, screen first.
func SelectAll(t Target, c Capabilities) []Selection {
	targets := t.Each()
	out := make([]Selection, len(targets))
	for i, single := range targets {
		out[i] = Select(single, c)
	}
	return out
}
