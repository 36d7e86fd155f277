package linespec

import (
	"strings"
	"testing"

	"github.com/matzehuels/eggplot/pkg/errors"
)

func TestResolveDefaults(t *testing.T) {
	r := NewResolver()
	records, err := r.Resolve(13)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 13 {
		t.Fatalf("Resolve(13) returned %d records", len(records))
	}
	for i, rec := range records {
		idx := i + 1
		if rec.Index() != idx {
			t.Errorf("record %d has index %d", i, rec.Index())
		}
		if rec.Color() != Palette[(idx-1)%10] {
			t.Errorf("record %d color = %q, want %q", idx, rec.Color(), Palette[(idx-1)%10])
		}
		if rec.LineStyle() != "-" || rec.LineWidth() != 1 || rec.Marker() != "" || rec.MarkerSize() != 1 {
			t.Errorf("record %d has non-default fields: %+v", idx, *rec)
		}
	}
}

func TestResolveResetsCounter(t *testing.T) {
	r := NewResolver()
	for round := 0; round < 3; round++ {
		r.Next()
		r.Next()
		records, err := r.Resolve(4)
		if err != nil {
			t.Fatal(err)
		}
		for i, rec := range records {
			if rec.Index() != i+1 {
				t.Errorf("round %d: record %d has index %d", round, i, rec.Index())
			}
		}
	}
}

func TestCounter(t *testing.T) {
	r := NewResolver()
	if r.Next() != 1 || r.Next() != 2 {
		t.Error("Next() should count from 1")
	}
	r.Reset()
	if got := r.Next(); got != 1 {
		t.Errorf("Next() after Reset() = %d, want 1", got)
	}
}

func TestResolveEndToEnd(t *testing.T) {
	r := NewResolver()
	if err := r.SetAll(3, P(Marker, "*"), P(LineStyle, "--")); err != nil {
		t.Fatal(err)
	}
	if err := r.SetAll(1, P(MarkerSize, "4.9827")); err != nil {
		t.Fatal(err)
	}

	records, err := r.Resolve(3)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := RenderAll(records, OtherTables)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"set style line 1 lt 1 lw 1 pt 1 ps 4.98 lc rgb '#f00032'",
		"set style line 2 lt 1 lw 1 pt 2 ps 1 lc rgb '#227500'",
		"set style line 3 lt 2 lw 1 pt 3 ps 1 lc rgb '#1a3bea'",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d =\n  %q\nwant\n  %q", i+1, lines[i], want[i])
		}
	}
}

func TestResolveLaterOverridesWin(t *testing.T) {
	r := NewResolver()
	colors := []string{"[1.0, 0.01, 0.3]", "(255, 40, 60)", "#ff0030", "red", "r"}
	for _, c := range colors {
		if err := r.Set(1, Color, Text(c)); err != nil {
			t.Fatal(err)
		}
	}
	_ = r.Set(1, LineWidth, Text("2"))
	_ = r.Set(1, LineWidth, Number(3))

	records, err := r.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Color() != "r" {
		t.Errorf("Color() = %q, want r", records[0].Color())
	}
	if records[0].LineWidth() != 3 {
		t.Errorf("LineWidth() = %v, want 3", records[0].LineWidth())
	}
}

func TestResolveOverridesDoNotLeakAcrossCurves(t *testing.T) {
	r := NewResolver()
	_ = r.SetAll(1, P(Color, "k"), P(Marker, "o"), P(LineStyle, ":"))

	records, err := r.Resolve(2)
	if err != nil {
		t.Fatal(err)
	}
	second := records[1]
	if second.Color() != Palette[1] || second.Marker() != "" || second.LineStyle() != "-" {
		t.Errorf("curve 2 picked up curve 1 overrides: %+v", *second)
	}
}

func TestResolveIgnoresOutOfRangeOverrides(t *testing.T) {
	r := NewResolver()
	for i := 1; i <= 6; i++ {
		if err := r.Set(i, Marker, Text("none")); err != nil {
			t.Fatalf("Set(%d) error: %v", i, err)
		}
	}
	// Unresolvable at render time, but curve 9 is never plotted.
	if err := r.Set(9, Color, Text("q")); err != nil {
		t.Fatalf("Set(9) error: %v", err)
	}

	records, err := r.Resolve(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Resolve(2) returned %d records", len(records))
	}
	if _, err := RenderAll(records, OtherTables); err != nil {
		t.Errorf("out of range override leaked into render: %v", err)
	}
}

func TestResolverSetIndexErrors(t *testing.T) {
	r := NewResolver()
	for _, idx := range []int{0, -1} {
		err := r.Set(idx, Marker, Text("o"))
		if !errors.Is(err, errors.ErrCodeInvalidIndex) {
			t.Errorf("Set(%d) error = %v, want %v", idx, err, errors.ErrCodeInvalidIndex)
		}
		if err != nil && !strings.Contains(err.Error(), "positive integer") {
			t.Errorf("Set(%d) error = %q, want mention of positive integer", idx, err)
		}
	}
	if len(r.Overrides()) != 0 {
		t.Error("rejected overrides were recorded")
	}
}

func TestResolverSetAllIsAtomic(t *testing.T) {
	r := NewResolver()
	err := r.SetAll(1, P(Marker, "o"), P(LineWidth, "abc"))
	if !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Fatalf("SetAll() error = %v, want %v", err, errors.ErrCodeInvalidValue)
	}
	if len(r.Overrides()) != 0 {
		t.Error("partially valid SetAll() recorded overrides")
	}

	err = r.Set(1, Property(9), Text("x"))
	if !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("Set() with unknown property error = %v", err)
	}
}

func TestResolveNegativeCount(t *testing.T) {
	if _, err := NewResolver().Resolve(-1); err == nil {
		t.Error("Resolve(-1) should fail")
	}
}

func TestOverridesCopy(t *testing.T) {
	r := NewResolver()
	_ = r.SetAll(2, P(Marker, "x"))
	got := r.Overrides()
	got[0].Pairs[0] = P(Marker, "o")
	if r.Overrides()[0].Pairs[0].Value.String() != "x" {
		t.Error("Overrides() exposed internal state")
	}
}

func TestRenderAllSameRecordsManyTargets(t *testing.T) {
	r := NewResolver()
	_ = r.Set(1, Marker, Text("v"))
	records, _ := r.Resolve(1)

	aqua, err := RenderAll(records, AquaTables)
	if err != nil {
		t.Fatal(err)
	}
	other, err := RenderAll(records, OtherTables)
	if err != nil {
		t.Fatal(err)
	}
	canvas, err := RenderAll(records, CanvasTables)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(aqua[0], "pt 6") || !strings.Contains(other[0], "pt 10") || !strings.Contains(canvas[0], "pt 9") {
		t.Errorf("unexpected marker codes: %q %q %q", aqua[0], other[0], canvas[0])
	}
}

func TestRenderAllError(t *testing.T) {
	r := NewResolver()
	_ = r.Set(2, LineStyle, Text("~"))
	records, _ := r.Resolve(2)
	_, err := RenderAll(records, OtherTables)
	if !errors.Is(err, errors.ErrCodeInvalidLineStyle) {
		t.Fatalf("RenderAll() error = %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("RenderAll() error should name the line: %q", err)
	}
}
