package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/eggplot/pkg/cache"
	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), args...)
}

func runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"plot", "styles", "linespec", "terminals", "cache", "serve", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLinespecCommand(t *testing.T) {
	out, err := run(t, "linespec", "-n", "3", "-s", "3:marker=*,linestyle=--", "-s", "1:ms=4.9827")
	if err != nil {
		t.Fatal(err)
	}
	want := "set style line 1 lt 1 lw 1 pt 1 ps 4.98 lc rgb '#f00032'\n" +
		"set style line 2 lt 1 lw 1 pt 2 ps 1 lc rgb '#227500'\n" +
		"set style line 3 lt 2 lw 1 pt 3 ps 1 lc rgb '#1a3bea'\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestLinespecCommandErrors(t *testing.T) {
	if _, err := run(t, "linespec", "-f", "x11"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown family: %v", err)
	}
	if _, err := run(t, "linespec", "-s", "1:color=[2,0,0]"); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("bad colour: %v", err)
	}
}

func TestStylesCommand(t *testing.T) {
	out, err := run(t, "styles", "canvas")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "canvas") || !strings.Contains(out, "9 glyphs") {
		t.Errorf("output = %s", out)
	}
	if _, err := run(t, "styles", "x11"); err == nil {
		t.Error("unknown family should fail")
	}
}

func TestStylesRows(t *testing.T) {
	rows := stylesRows(familiesOf(t, "aqua", "other"))
	first := rows[0]
	if strings.Join(first, " ") != "line - 1 1" {
		t.Errorf("first row = %v", first)
	}
}

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlotDryRun(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "t,sin,cos\n0,0,1\n1,0.84,0.54\n")

	out, err := run(t, "plot", csv, "--shared-x", "--dry-run",
		"--assume-terminals", "wxt,cairo", "-t", "screen,png", "-d", dir,
		"-s", "2:ls=none,marker=o", "--grid", "--title", "Waves")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# ---- eggp-screen.gp ----",
		"# ---- eggp-png.gp ----",
		"set terminal wxt dashed",
		"set terminal pngcairo enhanced dashed",
		"set output 'eggp-export.png'",
		"set style line 2 lt 0 lw 1 pt 6 ps 1 lc rgb '#227500'",
		"set grid lt 3 lc rgb '#cccccc'",
		`set title "Waves"`,
		"title 'sin' with linespoints ls 1, 'eggp.dat' index 1 title 'cos' with points ls 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dry run output missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "eggp.dat")); !os.IsNotExist(err) {
		t.Error("dry run should not write files")
	}
}

func TestPlotConfig(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "1,2\n3,4\n")
	cfg := filepath.Join(dir, "fig.toml")
	body := "data = \"data.csv\"\ntargets = [\"svg\"]\noutput = \"fig\"\n\n[[style]]\ncurve = 1\nlinewidth = 2.5\n"
	if err := os.WriteFile(cfg, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "plot", "-c", cfg, "--dry-run", "--assume-terminals", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "set terminal svg") || !strings.Contains(out, "lw 2.5") ||
		!strings.Contains(out, "set output 'fig.svg'") {
		t.Errorf("output:\n%s", out)
	}
}

func TestPlotErrors(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "1,2,3\n")

	if _, err := run(t, "plot", "--dry-run", "--assume-terminals", "wxt"); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("no data: %v", err)
	}
	if _, err := run(t, "plot", csv, "--dry-run", "--assume-terminals", "wxt"); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("odd columns: %v", err)
	}
	if _, err := run(t, "plot", csv, "-t", "gif", "--dry-run"); !errors.Is(err, errors.ErrCodeInvalidTarget) {
		t.Errorf("bad target: %v", err)
	}
	if _, err := run(t, "plot", filepath.Join(dir, "missing.csv"), "--dry-run", "--assume-terminals", "wxt"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(out)
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q", dir)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = fc.Set(context.Background(), cache.NewDefaultKeyer().ProbeKey("gnuplot", "wxt"), []byte("1"), 0)

	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(context.Background(), cache.NewDefaultKeyer().ProbeKey("gnuplot", "wxt")); hit {
		t.Error("cache clear should remove entries")
	}
}

func TestHeaderLegends(t *testing.T) {
	header := []string{"x1", "a", "x2", "b"}
	if got := strings.Join(headerLegends(header, false), ","); got != "a,b" {
		t.Errorf("paired legends = %q", got)
	}
	if got := strings.Join(headerLegends([]string{"t", "a", "b"}, true), ","); got != "a,b" {
		t.Errorf("shared legends = %q", got)
	}
}

func familiesOf(t *testing.T, names ...string) []linespec.Family {
	t.Helper()
	out := make([]linespec.Family, len(names))
	for i, n := range names {
		f, ok := linespec.ParseFamily(n)
		if !ok {
			t.Fatalf("unknown family %q", n)
		}
		out[i] = f
	}
	return out
}

func fakeGnuplot(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "gnuplot")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestPlotExec(t *testing.T) {
	bin := fakeGnuplot(t, `echo "$@" >> calls.txt`)
	dir := t.TempDir()
	csv := writeCSV(t, dir, "1,2\n3,4\n")

	if _, err := run(t, "plot", csv, "-d", dir, "-t", "screen,svg",
		"--gnuplot", bin, "--assume-terminals", "wxt"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"eggp.dat", "eggp-screen.gp", "eggp-svg.gp"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	calls, err := os.ReadFile(filepath.Join(dir, "calls.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(calls); got != "-persist eggp-screen.gp\neggp-svg.gp\n" {
		t.Errorf("gnuplot calls = %q", got)
	}
}

func TestPlotExecFailure(t *testing.T) {
	bin := fakeGnuplot(t, "echo 'line 1: unknown terminal' >&2\nexit 1\n")
	dir := t.TempDir()
	csv := writeCSV(t, dir, "1,2\n")

	_, err := run(t, "plot", csv, "-d", dir, "--gnuplot", bin, "--assume-terminals", "wxt")
	if !errors.Is(err, errors.ErrCodeExec) {
		t.Errorf("error = %v, want EXEC_FAILED", err)
	}
}

func TestPlotExecInterrupted(t *testing.T) {
	bin := fakeGnuplot(t, "exit 0\n")
	dir := t.TempDir()
	csv := writeCSV(t, dir, "1,2\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runContext(t, ctx, "plot", csv, "-d", dir, "--gnuplot", bin, "--assume-terminals", "wxt")
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
