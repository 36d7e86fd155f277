package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eggplot/pkg/config"
	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/plot"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	config  string
	targets string
	output  string
	dir     string
	prefix  string
	title   string
	xlabel  string
	ylabel  string
	legend  []string
	grid    bool
	sharedX bool
	styles  []string
	dryRun  bool
	probe   probeOpts
}

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	opts := plotOpts{targets: "screen", dir: ".", prefix: plot.DefaultPrefix}

	cmd := &cobra.Command{
		Use:   "plot [data.csv]",
		Short: "Plot CSV data with gnuplot",
		Long: `Plot comma separated data with gnuplot.

Columns are read as x1,y1,x2,y2,... pairs, or with --shared-x as x,y1,y2,...
A header row, if present, names the curves.

Examples:
  eggplot plot data.csv
  eggplot plot data.csv -t screen,pdf -o figure1 --grid
  eggplot plot data.csv --shared-x -s "2:linestyle=--,marker=o" -s "3:color=[0,0.5,1]"
  eggplot plot -c figure.toml --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML plot description")
	cmd.Flags().StringVarP(&opts.targets, "targets", "t", opts.targets, "output targets: screen, png, eps, pdf, html, svg, all")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base name of exported files")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "directory for data, scripts and exports")
	cmd.Flags().StringVar(&opts.prefix, "prefix", opts.prefix, "base name of the data file and scripts")
	cmd.Flags().StringVar(&opts.title, "title", "", "plot title")
	cmd.Flags().StringVar(&opts.xlabel, "xlabel", "", "x axis label")
	cmd.Flags().StringVar(&opts.ylabel, "ylabel", "", "y axis label")
	cmd.Flags().StringSliceVar(&opts.legend, "legend", nil, "legend entries, one per curve")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw grid lines")
	cmd.Flags().BoolVar(&opts.sharedX, "shared-x", false, "use the first column as x for every other column")
	cmd.Flags().StringArrayVarP(&opts.styles, "style", "s", nil, `line spec, e.g. "2:linestyle=--,marker=o" (repeatable)`)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the generated scripts instead of running gnuplot")
	opts.probe.register(cmd)

	return cmd
}

func (c *CLI) runPlot(cmd *cobra.Command, args []string, opts *plotOpts) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var file *config.File
	if opts.config != "" {
		f, warnings, err := config.Load(opts.config)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			c.Logger.Warn("config", "file", opts.config, "warning", w)
		}
		file = f
	}

	figOpts := []plot.Option{plot.WithLogger(c.Logger)}
	if file != nil {
		fileOpts, err := file.Options()
		if err != nil {
			return err
		}
		figOpts = append(figOpts, fileOpts...)
	}
	if file == nil || len(file.Targets) == 0 || flags.Changed("targets") {
		t, err := terminal.ParseTargets(opts.targets)
		if err != nil {
			return err
		}
		figOpts = append(figOpts, plot.WithTargets(t))
	}
	if file == nil || file.Dir == "" || flags.Changed("dir") {
		figOpts = append(figOpts, plot.WithDir(opts.dir))
	}
	if file == nil || file.Prefix == "" || flags.Changed("prefix") {
		figOpts = append(figOpts, plot.WithPrefix(opts.prefix))
	}

	oracle, closeOracle, err := c.newOracle(ctx, opts.probe, "")
	if err != nil {
		return err
	}
	defer closeOracle()
	figOpts = append(figOpts, plot.WithOracle(oracle), plot.WithRunner(&plot.GnuplotRunner{Binary: opts.probe.gnuplot}))

	fig := plot.New(figOpts...)
	legendSet := false
	if file != nil {
		if err := file.Apply(fig); err != nil {
			return err
		}
		legendSet = len(file.Legend) > 0
	}
	if err := applyPlotFlags(fig, flags.Changed, opts); err != nil {
		return err
	}
	legendSet = legendSet || flags.Changed("legend")

	dataPath := ""
	if len(args) == 1 {
		dataPath = args[0]
	} else if file != nil {
		dataPath = file.DataPath()
	}
	if dataPath != "" {
		if err := loadCSV(fig, dataPath, opts.sharedX || (file != nil && file.SharedX), legendSet); err != nil {
			return err
		}
	}
	if fig.Curves() == 0 {
		return errors.New(errors.ErrCodeInvalidData, "nothing to plot: pass a CSV file or a config with data")
	}

	if opts.dryRun {
		return c.printScripts(ctx, cmd, fig)
	}
	return c.execFigure(ctx, fig)
}

// applyPlotFlags copies the label, legend, grid, export and style flags onto
// fig. Flags override values from a config file only when given.
func applyPlotFlags(fig *plot.Figure, changed func(string) bool, opts *plotOpts) error {
	for _, set := range []struct {
		flag  string
		fn    func(string) error
		value string
	}{
		{"title", fig.Title, opts.title},
		{"xlabel", fig.XLabel, opts.xlabel},
		{"ylabel", fig.YLabel, opts.ylabel},
		{"output", fig.Print, opts.output},
	} {
		if !changed(set.flag) {
			continue
		}
		if err := set.fn(set.value); err != nil {
			return fmt.Errorf("--%s: %w", set.flag, err)
		}
	}
	if changed("legend") {
		if err := fig.Legend(opts.legend...); err != nil {
			return fmt.Errorf("--legend: %w", err)
		}
	}
	if changed("grid") {
		fig.Grid(opts.grid)
	}
	for _, s := range opts.styles {
		o, err := parseStyleFlag(s)
		if err != nil {
			return fmt.Errorf("--style: %w", err)
		}
		if err := fig.LineSpec(o.Index, o.Pairs...); err != nil {
			return fmt.Errorf("--style %q: %w", s, err)
		}
	}
	return nil
}

// loadCSV reads path into fig. Header names become legends unless legends
// were given explicitly.
func loadCSV(fig *plot.Figure, path string, sharedX, legendSet bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "open data %s", path)
	}
	defer f.Close()

	header, columns, err := plot.ReadColumns(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	vectors, err := plot.Pair(columns, sharedX)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := fig.Plot(vectors...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if legendSet || len(header) != len(columns) {
		return nil
	}
	return fig.Legend(headerLegends(header, sharedX)...)
}

// headerLegends picks the y column names from a CSV header.
func headerLegends(header []string, sharedX bool) []string {
	if sharedX {
		return header[1:]
	}
	var out []string
	for i := 1; i < len(header); i += 2 {
		out = append(out, header[i])
	}
	return out
}

func (c *CLI) printScripts(ctx context.Context, cmd *cobra.Command, fig *plot.Figure) error {
	b, err := fig.Build(ctx)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, s := range b.Scripts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# ---- %s ----\n%s", s.Name, s.Text)
	}
	return nil
}

func (c *CLI) execFigure(ctx context.Context, fig *plot.Figure) error {
	dir := fig.Dir()
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Running gnuplot...")
	spinner.Start()
	b, err := fig.Exec(ctx)
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Interrupted while running gnuplot")
			return ctx.Err()
		}
		spinner.StopWithError("gnuplot failed")
		return err
	}
	spinner.StopWithSuccess("Plotted %d curves for %s", len(b.Records), fig.Targets())
	prog.done(fmt.Sprintf("Plotted %d curves", len(b.Records)))

	fallbacks := 0
	for _, s := range b.Scripts {
		if s.Selection.Fallback {
			fallbacks++
		}
	}
	printPlotStats(len(b.Records), len(b.Scripts), fallbacks)
	printFile(filepath.Join(dir, b.DataName))
	for _, s := range b.Scripts {
		printFile(filepath.Join(dir, s.Name))
		if s.Output != "" {
			printFile(filepath.Join(dir, s.Output))
		}
	}
	if fallbacks > 0 {
		printWarning("%d of %d targets use a generic terminal; line styles may differ", fallbacks, len(b.Scripts))
		printNextStep("Check available terminals", appName+" terminals")
	}
	return nil
}
