package plot

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
	"github.com/matzehuels/eggplot/pkg/observability"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// Defaults for file naming.
const (
	DefaultPrefix = "eggp"
	DefaultExport = "eggp-export"
)

// Curve is one x/y data series.
type Curve struct {
	X []float64
	Y []float64
}

// Figure collects everything needed to draw one plot.
//
// A Figure is not safe for concurrent use.
type Figure struct {
	targets terminal.Target
	prefix  string
	export  string
	dir     string

	xlabel  string
	ylabel  string
	title   string
	legends []string
	grid    bool

	resolver *linespec.Resolver
	curves   []Curve

	oracle terminal.Oracle
	caps   *terminal.Capabilities
	runner Runner
	logger *log.Logger
}

// Option configures a Figure.
type Option func(*Figure)

// WithTargets sets the output targets. The default is the screen.
func WithTargets(t terminal.Target) Option {
	return func(f *Figure) { f.targets = t }
}

// WithPrefix sets the base name of the data file and scripts.
func WithPrefix(prefix string) Option {
	return func(f *Figure) { f.prefix = prefix }
}

// WithDir sets the directory all files are written to and gnuplot runs in.
func WithDir(dir string) Option {
	return func(f *Figure) { f.dir = dir }
}

// WithOracle sets the oracle used to probe terminals.
func WithOracle(o terminal.Oracle) Option {
	return func(f *Figure) { f.oracle = o }
}

// WithCapabilities skips probing and uses c instead.
func WithCapabilities(c terminal.Capabilities) Option {
	return func(f *Figure) { f.caps = &c }
}

// WithRunner sets the runner Exec hands scripts to.
func WithRunner(r Runner) Option {
	return func(f *Figure) { f.runner = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(f *Figure) { f.logger = l }
}

// New returns an empty figure.
func New(opts ...Option) *Figure {
	f := &Figure{
		targets:  terminal.Screen,
		prefix:   DefaultPrefix,
		export:   DefaultExport,
		dir:      ".",
		resolver: linespec.NewResolver(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if f.oracle == nil {
		f.oracle = &terminal.GnuplotOracle{Dir: f.dir, Prefix: f.prefix, Logger: f.logger}
	}
	if f.runner == nil {
		f.runner = &GnuplotRunner{}
	}
	return f
}

// Targets returns the output targets.
func (f *Figure) Targets() terminal.Target { return f.targets }

// Dir returns the output directory.
func (f *Figure) Dir() string { return f.dir }

// Curves returns the number of stored curves.
func (f *Figure) Curves() int { return len(f.curves) }

// Resolver exposes the style overrides recorded so far.
func (f *Figure) Resolver() *linespec.Resolver { return f.resolver }

// XLabel sets the x axis label.
func (f *Figure) XLabel(label string) error {
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	f.xlabel = label
	return nil
}

// YLabel sets the y axis label.
func (f *Figure) YLabel(label string) error {
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	f.ylabel = label
	return nil
}

// Title sets the plot title.
func (f *Figure) Title(label string) error {
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	f.title = label
	return nil
}

// Legend sets one legend entry per curve. With no entries the curves are
// labelled 1..n when the figure is built.
func (f *Figure) Legend(entries ...string) error {
	for _, e := range entries {
		if err := errors.ValidateLabel(e); err != nil {
			return err
		}
	}
	f.legends = append([]string(nil), entries...)
	return nil
}

// Grid turns grid lines on or off.
func (f *Figure) Grid(on bool) { f.grid = on }

// Print sets the base name of exported files.
func (f *Figure) Print(name string) error {
	if err := errors.ValidatePrefix(name); err != nil {
		return err
	}
	f.export = name
	return nil
}

// LineSpec records style overrides for a 1-based curve index.
func (f *Figure) LineSpec(index int, pairs ...linespec.Pair) error {
	return f.resolver.SetAll(index, pairs...)
}

// LineSpecText records one textual override.
func (f *Figure) LineSpecText(index int, p linespec.Property, s string) error {
	return f.resolver.Set(index, p, linespec.Text(s))
}

// LineSpecNumber records one numeric override.
func (f *Figure) LineSpecNumber(index int, p linespec.Property, v float64) error {
	return f.resolver.Set(index, p, linespec.Number(v))
}

// Plot stores curve data given as x1, y1, x2, y2, ... It replaces any
// curves stored by an earlier call.
func (f *Figure) Plot(vectors ...[]float64) error {
	if len(vectors)%2 != 0 {
		return errors.New(errors.ErrCodeInvalidData, "Arguments must be even number of data vectors")
	}
	curves := make([]Curve, 0, len(vectors)/2)
	for i := 0; i < len(vectors); i += 2 {
		x, y := vectors[i], vectors[i+1]
		if len(x) != len(y) {
			return errors.New(errors.ErrCodeInvalidData,
				"Pairwise data vectors must have the same lengths (curve %d: %d vs %d)", i/2+1, len(x), len(y))
		}
		curves = append(curves, Curve{X: append([]float64(nil), x...), Y: append([]float64(nil), y...)})
	}
	f.curves = curves
	return nil
}

// Build is the output of Figure.Build.
type Build struct {
	// DataName is the data file name relative to the output directory.
	DataName string
	Data     []byte
	Legends  []string
	Records  []*linespec.Record
	Caps     terminal.Capabilities
	Scripts  []Script
}

func (f *Figure) dataName() string { return f.prefix + ".dat" }

// Build renders the data file and one script per target. A figure without
// curves builds to an empty result.
func (f *Figure) Build(ctx context.Context) (*Build, error) {
	if err := errors.ValidatePrefix(f.prefix); err != nil {
		return nil, err
	}
	n := len(f.curves)
	if n == 0 {
		f.logger.Debug("no curves to plot")
		return &Build{DataName: f.dataName()}, nil
	}

	legends := f.legends
	if len(legends) == 0 {
		legends = make([]string, n)
		for i := range legends {
			legends[i] = strconv.Itoa(i + 1)
		}
	} else if len(legends) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"Legends must match the number of data vector pairs (%d legends, %d curves)", len(legends), n)
	}

	targetNames := make([]string, 0, 6)
	for _, t := range f.targets.Each() {
		targetNames = append(targetNames, t.String())
	}
	start := time.Now()
	observability.Plot().OnBuildStart(ctx, targetNames, n)
	b, err := f.build(ctx, legends)
	observability.Plot().OnBuildComplete(ctx, targetNames, time.Since(start), err)
	return b, err
}

func (f *Figure) build(ctx context.Context, legends []string) (*Build, error) {
	records, err := f.resolver.Resolve(len(f.curves))
	if err != nil {
		return nil, err
	}

	caps, err := f.capabilities(ctx)
	if err != nil {
		return nil, err
	}

	b := &Build{
		DataName: f.dataName(),
		Data:     encodeData(f.curves),
		Legends:  legends,
		Records:  records,
		Caps:     caps,
	}
	for _, sel := range terminal.SelectAll(f.targets, caps) {
		s, err := f.script(sel, records, legends)
		if err != nil {
			return nil, err
		}
		if sel.Fallback {
			f.logger.Warn("no supported terminal found", "target", sel.Target)
		}
		b.Scripts = append(b.Scripts, s)
	}
	f.logger.Debug("built figure", "curves", len(records), "scripts", len(b.Scripts))
	return b, nil
}

func (f *Figure) capabilities(ctx context.Context) (terminal.Capabilities, error) {
	if f.caps != nil {
		return *f.caps, nil
	}
	caps, err := terminal.Probe(ctx, f.oracle)
	if err != nil {
		return terminal.Capabilities{}, err
	}
	f.caps = &caps
	return caps, nil
}

// Exec builds the figure, writes its files and runs gnuplot on every script.
func (f *Figure) Exec(ctx context.Context) (*Build, error) {
	b, err := f.Build(ctx)
	if err != nil {
		return nil, err
	}
	if len(b.Scripts) == 0 {
		return b, nil
	}
	if err := b.Write(f.dir); err != nil {
		return nil, err
	}
	for _, s := range b.Scripts {
		start := time.Now()
		observability.Plot().OnExecStart(ctx, s.Name)
		err := f.runner.Run(ctx, f.dir, s.Name, s.Target == terminal.Screen)
		observability.Plot().OnExecComplete(ctx, s.Name, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		f.logger.Info("ran gnuplot", "script", s.Name, "output", s.Output)
	}
	return b, nil
}
