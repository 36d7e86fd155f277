// Package config loads plot description files written in TOML.
//
// A description names the labels, targets and style overrides of a figure
// and where its data comes from:
//
//	title   = "Convergence"
//	xlabel  = "iteration"
//	legend  = ["jacobi", "gauss-seidel"]
//	grid    = true
//	targets = ["screen", "pdf"]
//	output  = "convergence"
//	data    = "residuals.csv"
//
//	[[style]]
//	curve     = 2
//	linestyle = "--"
//	linewidth = 2
//
// Numeric TOML values become numeric style values; strings are passed as
// text, so `linewidth = "2"` and `linewidth = 2` are equivalent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
	"github.com/matzehuels/eggplot/pkg/plot"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// File is a decoded plot description.
type File struct {
	Title   string   `toml:"title"`
	XLabel  string   `toml:"xlabel"`
	YLabel  string   `toml:"ylabel"`
	Legend  []string `toml:"legend"`
	Grid    bool     `toml:"grid"`
	Targets []string `toml:"targets"`
	Output  string   `toml:"output"`
	Prefix  string   `toml:"prefix"`
	Dir     string   `toml:"dir"`

	// Data is a CSV file, relative to the description file.
	Data string `toml:"data"`
	// SharedX treats the first CSV column as x for every other column.
	SharedX bool `toml:"shared_x"`

	Curves []Curve          `toml:"curve"`
	Styles []map[string]any `toml:"style"`

	base string
}

// Curve is inline curve data.
type Curve struct {
	X []float64 `toml:"x"`
	Y []float64 `toml:"y"`
}

// Load reads and decodes a description file. Keys that match nothing are
// returned as warnings.
func Load(path string) (*File, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeNotFound, err, "read config %s", path)
	}
	f, warnings, err := Parse(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	f.base = filepath.Dir(path)
	return f, warnings, nil
}

// Parse decodes a description from TOML text.
func Parse(text string) (*File, []string, error) {
	var f File
	md, err := toml.Decode(text, &f)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	var warnings []string
	for _, key := range md.Undecoded() {
		// Style tables are decoded as maps; their keys are checked by Overrides.
		if len(key) > 0 && key[0] == "style" {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown key %q", key.String()))
	}
	return &f, warnings, nil
}

// DataPath returns the CSV path resolved against the description's directory.
func (f *File) DataPath() string {
	if f.Data == "" || filepath.IsAbs(f.Data) || f.base == "" {
		return f.Data
	}
	return filepath.Join(f.base, f.Data)
}

// TargetMask parses the targets list. An empty list yields zero.
func (f *File) TargetMask() (terminal.Target, error) {
	if len(f.Targets) == 0 {
		return 0, nil
	}
	t, err := terminal.ParseTargets(strings.Join(f.Targets, ","))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "targets")
	}
	return t, nil
}

// Overrides converts the [[style]] tables into style overrides. Keys other
// than "curve" are property names or aliases. A table may name each property
// once; "ls" and "linestyle" in the same table is an error.
func (f *File) Overrides() ([]linespec.Override, error) {
	out := make([]linespec.Override, 0, len(f.Styles))
	for i, table := range f.Styles {
		o, err := override(table)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "style %d", i+1)
		}
		out = append(out, o)
	}
	return out, nil
}

func override(table map[string]any) (linespec.Override, error) {
	raw, ok := table["curve"]
	if !ok {
		return linespec.Override{}, fmt.Errorf("missing curve index")
	}
	index, ok := raw.(int64)
	if !ok {
		return linespec.Override{}, fmt.Errorf("curve must be an integer, got %v", raw)
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		if k != "curve" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	o := linespec.Override{Index: int(index)}
	seen := make(map[linespec.Property]string, len(keys))
	for _, k := range keys {
		p, err := linespec.ParseProperty(k)
		if err != nil {
			return linespec.Override{}, err
		}
		if prev, dup := seen[p]; dup {
			return linespec.Override{}, errors.New(errors.ErrCodeInvalidProperty,
				"%q and %q both set %s", prev, k, p)
		}
		seen[p] = k
		v, err := value(table[k])
		if err != nil {
			return linespec.Override{}, fmt.Errorf("%s: %w", k, err)
		}
		o.Pairs = append(o.Pairs, linespec.Pair{Property: p, Value: v})
	}
	return o, nil
}

func value(raw any) (linespec.Value, error) {
	switch v := raw.(type) {
	case string:
		return linespec.Text(v), nil
	case int64:
		return linespec.Number(float64(v)), nil
	case float64:
		return linespec.Number(v), nil
	}
	return linespec.Value{}, fmt.Errorf("unsupported value %v (%T)", raw, raw)
}

// Options returns the figure options carried by the description.
func (f *File) Options() ([]plot.Option, error) {
	var opts []plot.Option
	t, err := f.TargetMask()
	if err != nil {
		return nil, err
	}
	if t != 0 {
		opts = append(opts, plot.WithTargets(t))
	}
	if f.Prefix != "" {
		opts = append(opts, plot.WithPrefix(f.Prefix))
	}
	if f.Dir != "" {
		dir := f.Dir
		if !filepath.IsAbs(dir) && f.base != "" {
			dir = filepath.Join(f.base, dir)
		}
		opts = append(opts, plot.WithDir(dir))
	}
	return opts, nil
}

// Apply sets labels, legends, grid, export name, style overrides and any
// inline curves on fig.
func (f *File) Apply(fig *plot.Figure) error {
	for _, set := range []struct {
		fn    func(string) error
		value string
	}{
		{fig.Title, f.Title},
		{fig.XLabel, f.XLabel},
		{fig.YLabel, f.YLabel},
	} {
		if set.value == "" {
			continue
		}
		if err := set.fn(set.value); err != nil {
			return err
		}
	}
	if len(f.Legend) > 0 {
		if err := fig.Legend(f.Legend...); err != nil {
			return err
		}
	}
	if f.Grid {
		fig.Grid(true)
	}
	if f.Output != "" {
		if err := fig.Print(f.Output); err != nil {
			return err
		}
	}

	overrides, err := f.Overrides()
	if err != nil {
		return err
	}
	for _, o := range overrides {
		if err := fig.LineSpec(o.Index, o.Pairs...); err != nil {
			return err
		}
	}

	if len(f.Curves) > 0 {
		vectors := make([][]float64, 0, 2*len(f.Curves))
		for _, c := range f.Curves {
			vectors = append(vectors, c.X, c.Y)
		}
		if err := fig.Plot(vectors...); err != nil {
			return err
		}
	}
	return nil
}
