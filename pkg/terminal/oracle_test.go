package terminal

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/eggplot/pkg/cache"
	"github.com/matzehuels/eggplot/pkg/errors"
)

// fakeGnuplot writes a shell script that answers 1 for the listed terminals.
func fakeGnuplot(t *testing.T, supported ...string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	var cases strings.Builder
	for _, name := range supported {
		cases.WriteString("  *\"GPVAL_TERMINALS, '" + name + "'\"*) answer=1 ;;\n")
	}
	script := `#!/bin/sh
path=$(printf '%s' "$2" | sed -n "s/^set print '\([^']*\)'.*/\1/p")
answer=0
case "$2" in
` + cases.String() + `esac
echo $answer > "$path"
`
	bin := filepath.Join(t.TempDir(), "gnuplot")
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestCommand(t *testing.T) {
	got := Command("/tmp/eggp-exists-wxt-1", "wxt")
	want := "set print '/tmp/eggp-exists-wxt-1'; if (strstrt(GPVAL_TERMINALS, 'wxt')) print 1; else print 0"
	if got != want {
		t.Errorf("Command() = %q\nwant %q", got, want)
	}
	if got := Command("/tmp/it's", "svg"); !strings.Contains(got, "'/tmp/it''s'") {
		t.Errorf("quote not doubled: %q", got)
	}
}

func TestGnuplotOracle(t *testing.T) {
	dir := t.TempDir()
	o := &GnuplotOracle{Binary: fakeGnuplot(t, "wxt", "svg"), Dir: dir}
	ctx := context.Background()

	for name, want := range map[string]bool{"wxt": true, "svg": true, "aqua": false} {
		got, err := o.Exists(ctx, name)
		if err != nil {
			t.Fatalf("Exists(%s): %v", name, err)
		}
		if got != want {
			t.Errorf("Exists(%s) = %v, want %v", name, got, want)
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("side channel files left behind: %d", len(entries))
	}
}

func TestGnuplotOracleErrors(t *testing.T) {
	ctx := context.Background()

	o := &GnuplotOracle{Binary: filepath.Join(t.TempDir(), "no-such-gnuplot")}
	if _, err := o.Exists(ctx, "wxt"); errors.GetCode(err) != errors.ErrCodeNotFound {
		t.Errorf("missing binary: code = %s (%v)", errors.GetCode(err), err)
	}

	if _, err := o.Exists(ctx, "wxt'; system('rm"); errors.GetCode(err) != errors.ErrCodeInvalidTerminal {
		t.Errorf("bad name: code = %s", errors.GetCode(err))
	}
}

func TestStaticOracle(t *testing.T) {
	o := StaticOracle{"wxt": true}
	if ok, _ := o.Exists(context.Background(), "wxt"); !ok {
		t.Error("wxt should exist")
	}
	if ok, _ := o.Exists(context.Background(), "aqua"); ok {
		t.Error("aqua should not exist")
	}
}

type countingOracle struct {
	StaticOracle
	calls int
}

func (c *countingOracle) Exists(ctx context.Context, name string) (bool, error) {
	c.calls++
	return c.StaticOracle.Exists(ctx, name)
}

func TestCachedOracle(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingOracle{StaticOracle: StaticOracle{"cairo": true}}
	o := NewCachedOracle(inner, fc, "gnuplot", time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, err := o.Exists(ctx, "cairo"); err != nil || !ok {
			t.Fatalf("Exists(cairo) = %v, %v", ok, err)
		}
		if ok, _ := o.Exists(ctx, "aqua"); ok {
			t.Fatal("Exists(aqua) should be false")
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner oracle called %d times, want 2", inner.calls)
	}
}

func TestCachedOracleNilCache(t *testing.T) {
	inner := &countingOracle{StaticOracle: StaticOracle{}}
	o := NewCachedOracle(inner, nil, "", 0)
	_, _ = o.Exists(context.Background(), "wxt")
	_, _ = o.Exists(context.Background(), "wxt")
	if inner.calls != 2 {
		t.Errorf("nil cache should not cache, calls = %d", inner.calls)
	}
}

func TestProbe(t *testing.T) {
	caps, err := Probe(context.Background(), StaticOracle{"wxt": true, "cairo": true, "svg": true})
	if err != nil {
		t.Fatal(err)
	}
	want := Capabilities{Wxt: true, Cairo: true, SVG: true}
	if caps != want {
		t.Errorf("Probe() = %+v, want %+v", caps, want)
	}
	if !caps.Has("cairo") || caps.Has("aqua") || caps.Has("x11") {
		t.Error("Has mismatch")
	}
}
