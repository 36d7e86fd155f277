package terminal

import (
	"strings"
	"testing"

	"github.com/matzehuels/eggplot/pkg/linespec"
)

func TestSelectScreen(t *testing.T) {
	tests := []struct {
		name      string
		caps      Capabilities
		directive string
		tables    *linespec.Tables
		fallback  bool
	}{
		{"aqua preferred", Capabilities{Aqua: true, Wxt: true}, "set terminal aqua dashed", linespec.AquaTables, false},
		{"wxt", Capabilities{Wxt: true}, "set terminal wxt dashed", linespec.OtherTables, false},
		{"none", Capabilities{Cairo: true}, "", linespec.OtherTables, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Select(Screen, tt.caps)
			if s.Directive != tt.directive {
				t.Errorf("Directive = %q, want %q", s.Directive, tt.directive)
			}
			if s.Tables != tt.tables {
				t.Errorf("Tables = %s, want %s", s.Tables.Name(), tt.tables.Name())
			}
			if s.Fallback != tt.fallback {
				t.Errorf("Fallback = %v", s.Fallback)
			}
		})
	}
}

func TestFallbackComment(t *testing.T) {
	s := Select(Screen, Capabilities{})
	want := "# No supported display terminal found. Line styles may be not accurate."
	if s.Comment != want {
		t.Errorf("Comment = %q, want %q", s.Comment, want)
	}
	if got := Select(HTML, Capabilities{}).Comment; !strings.Contains(got, "No supported html terminal") {
		t.Errorf("html comment = %q", got)
	}
	if Select(SVG, Capabilities{SVG: true}).Comment != "" {
		t.Error("supported terminal should carry no comment")
	}
}

func TestSelectExports(t *testing.T) {
	cairo := Capabilities{Cairo: true}
	tests := []struct {
		target    Target
		caps      Capabilities
		directive string
		fallback  bool
	}{
		{PNG, cairo, "set terminal pngcairo enhanced dashed", false},
		{EPS, cairo, "set terminal epscairo transparent color enhanced dashed", false},
		{PDF, cairo, "set terminal pdfcairo transparent color enhanced dashed", false},
		{PNG, Capabilities{}, "set terminal png", true},
		{EPS, Capabilities{}, "set terminal postscript eps color dashed", true},
		{PDF, Capabilities{}, "set terminal pdf", true},
		{HTML, Capabilities{Canvas: true}, "set terminal canvas", false},
		{SVG, Capabilities{SVG: true}, "set terminal svg", false},
		{SVG, cairo, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			s := Select(tt.target, tt.caps)
			if s.Directive != tt.directive || s.Fallback != tt.fallback {
				t.Errorf("Select(%s) = %q fallback=%v, want %q fallback=%v",
					tt.target, s.Directive, s.Fallback, tt.directive, tt.fallback)
			}
			if s.Target != tt.target {
				t.Errorf("Target = %s", s.Target)
			}
		})
	}
}

func TestSelectHTMLUsesCanvasTables(t *testing.T) {
	s := Select(HTML, Capabilities{Canvas: true})
	if s.Tables != linespec.CanvasTables || s.Family != linespec.FamilyCanvas {
		t.Errorf("HTML selection tables = %s", s.Tables.Name())
	}
}

func TestSelectAll(t *testing.T) {
	sels := SelectAll(Screen|PNG|SVG, Capabilities{Wxt: true, Cairo: true, SVG: true})
	if len(sels) != 3 {
		t.Fatalf("SelectAll() returned %d selections", len(sels))
	}
	if sels[0].Terminal != Wxt || sels[1].Terminal != "pngcairo" || sels[2].Terminal != SVGTerm {
		t.Errorf("terminals = %s, %s, %s", sels[0].Terminal, sels[1].Terminal, sels[2].Terminal)
	}
}
