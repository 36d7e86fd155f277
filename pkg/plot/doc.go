// Package plot turns curve data and style directives into gnuplot scripts.
//
// A [Figure] is configured MATLAB style: labels, legends, per-curve line
// specs, then data. Nothing touches the filesystem or gnuplot until
// [Figure.Build] or [Figure.Exec]:
//
//	fig := plot.New(plot.WithTargets(terminal.Screen | terminal.PDF))
//	fig.Title("Convergence")
//	fig.LineSpecText(2, linespec.LineStyle, "--")
//	if err := fig.Plot(x, y1, x, y2); err != nil {
//	    return err
//	}
//	_, err := fig.Exec(ctx)
//
// Build probes the terminals of the installed gnuplot once, then produces one
// [Script] per target, each with style lines rendered for that target's
// terminal tables. Exec writes the data file and scripts to the output
// directory and runs gnuplot on each script.
package plot
