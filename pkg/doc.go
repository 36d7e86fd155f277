// Package pkg provides the core libraries of eggplot, a MATLAB-style plotting
// front end for gnuplot.
//
// # Overview
//
// eggplot takes pairs of x/y vectors and loose per-curve style directives
// ("--", "o", "[1,0.5,0]") and writes gnuplot scripts that draw them the same
// way on every terminal gnuplot offers. The pkg directory is organized into
// three areas:
//
//  1. [linespec] - Style directives, code tables and "set style line" rendering
//  2. [terminal] - Output targets, terminal probing and terminal selection
//  3. [plot] - Figures, data files, script generation and running gnuplot
//
// # Architecture
//
// The typical data flow through eggplot:
//
//	CSV / TOML / API calls
//	         ↓
//	    [plot.Figure] (curves, labels, legends, line specs)
//	         ↓
//	    [terminal] package (probe gnuplot, pick a terminal per target)
//	         ↓
//	    [linespec] package (resolve records, render style lines)
//	         ↓
//	    eggp.dat + eggp-<target>.gp → gnuplot
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/eggplot/pkg/linespec"
//	    "github.com/matzehuels/eggplot/pkg/plot"
//	    "github.com/matzehuels/eggplot/pkg/terminal"
//	)
//
//	fig := plot.New(plot.WithTargets(terminal.Screen | terminal.PDF))
//	_ = fig.Plot([]float64{0, 1, 2}, []float64{0, 1, 4})
//	_ = fig.LineSpec(1, linespec.P(linespec.LineStyle, "--"), linespec.P(linespec.Marker, "o"))
//	_ = fig.Title("Squares")
//	_, err := fig.Exec(context.Background())
//
// # Package Organization
//
// [linespec] - The five stylable properties, the per-family code tables,
// colour parsing and the [linespec.Resolver] that turns overrides into one
// record per curve.
//
// [terminal] - Output target bit sets, the [terminal.Oracle] that asks
// gnuplot whether a terminal exists, and the per-target terminal choice with
// its fallbacks.
//
// [plot] - The [plot.Figure] state, the data file encoding, per-target
// scripts and the [plot.Runner] that invokes gnuplot.
//
// [config] - TOML plot descriptions for the CLI.
//
// [cache] - Probe result caches (file, Redis, null).
//
// [observability] - Hooks for build, exec, probe, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/linespec/...           # Specific package
//	go test -run Example                 # Examples only
//
// [linespec]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/linespec
// [terminal]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/terminal
// [plot]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/plot
// [config]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/eggplot/pkg/buildinfo
package pkg
