// Package linespec resolves per-curve style directives into gnuplot
// "set style line" commands.
//
// # Overview
//
// A plot has one [Record] per curve. Callers describe styles loosely, the way
// a MATLAB user would: a line-style token ("-", "--", ":", "-.", "none"), a
// width, a marker token ("o", "*", "square", ...), a marker size and a colour
// in one of five encodings. The package validates those directives and turns
// them into the numeric codes a particular gnuplot terminal understands.
//
// # Tables
//
// Terminals disagree on dash patterns and marker glyphs. [AquaTables],
// [CanvasTables] and [OtherTables] hold the codes for each family;
// [TablesFor] picks the pair for a [Family]. The tables are immutable and
// shared by every render.
//
// # Resolving
//
// A [Resolver] accumulates overrides keyed by 1-based curve index, in any
// order and for any index. Once the number of curves is known, Resolve builds
// fresh records numbered from 1 and replays the overrides that fit:
//
//	r := linespec.NewResolver()
//	r.SetAll(3, linespec.P(linespec.Marker, "*"), linespec.P(linespec.LineStyle, "--"))
//	r.Set(1, linespec.MarkerSize, linespec.Number(4.9827))
//
//	records, err := r.Resolve(3)
//	lines, err := linespec.RenderAll(records, linespec.OtherTables)
//	// lines[0] == "set style line 1 lt 1 lw 1 pt 1 ps 4.98 lc rgb '#f00032'"
//
// Width, size and non-empty checks run when a value is set. Table membership
// of line-style and marker tokens and the colour grammar are checked when a
// record is rendered, because they depend on the terminal.
//
// # Colours
//
// [ResolveColor] accepts single-letter shortcuts ("r"), fractional triples
// ("[1, 0.5, 0]"), integer triples ("(255, 128, 0)"), and passes names and
// hex codes through unchanged.
package linespec
