package plot

import (
	"strconv"
	"strings"

	"github.com/matzehuels/eggplot/pkg/buildinfo"
	"github.com/matzehuels/eggplot/pkg/linespec"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// Script is a generated gnuplot script for one target.
type Script struct {
	Target    terminal.Target
	Selection terminal.Selection
	// Name is the script file name, e.g. "eggp-png.gp".
	Name string
	// Output is the exported file name, empty for the screen.
	Output string
	// Styles holds one "set style line" command per curve.
	Styles []string
	Text   string
}

// singleQuote quotes s for a gnuplot single-quoted string.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// doubleQuote quotes s for a gnuplot double-quoted string. Backslash escapes
// written by the caller, such as "\n", are kept.
func doubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func (f *Figure) script(sel terminal.Selection, records []*linespec.Record, legends []string) (Script, error) {
	styles, err := linespec.RenderAll(records, sel.Tables)
	if err != nil {
		return Script{}, err
	}

	s := Script{
		Target:    sel.Target,
		Selection: sel,
		Name:      f.prefix + "-" + sel.Target.String() + ".gp",
		Styles:    styles,
	}
	if sel.Target.IsExport() {
		s.Output = f.export + sel.Target.Ext()
	}

	var w strings.Builder
	line := func(parts ...string) {
		w.WriteString(strings.Join(parts, ""))
		w.WriteByte('\n')
	}

	line("# Gnuplot script file")
	line("# Automatically generated by ", buildinfo.Banner())
	line("set datafile separator ','")
	if sel.Comment != "" {
		line(sel.Comment)
	}
	if sel.Directive != "" {
		line(sel.Directive)
	}
	if s.Output != "" {
		line("set output ", singleQuote(s.Output))
	}
	for _, st := range styles {
		line(st)
	}
	line("set autoscale")
	line("unset log")
	line("unset label")
	line("set xtic auto")
	line("set ytic auto")
	if f.grid {
		line("set grid lt ", strconv.Itoa(linespec.GridLineType(sel.Family)), " lc rgb ", singleQuote(linespec.GridColor))
	}
	line("set title ", doubleQuote(f.title))
	line("set xlabel ", doubleQuote(f.xlabel))
	line("set ylabel ", doubleQuote(f.ylabel))

	entries := make([]string, len(records))
	for i, rec := range records {
		with := "linespoints"
		if rec.IsPointOnly() {
			with = "points"
		}
		entries[i] = singleQuote(f.dataName()) + " index " + strconv.Itoa(i) +
			" title " + singleQuote(legends[i]) + " with " + with + " ls " + strconv.Itoa(rec.Index())
	}
	line("plot ", strings.Join(entries, ", "))
	if s.Output != "" {
		line("set output")
	}

	s.Text = w.String()
	return s, nil
}
