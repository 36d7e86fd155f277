package cli

import (
	"testing"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
)

func TestParseStyleFlag(t *testing.T) {
	o, err := parseStyleFlag("2:ls=--, color=[1, 0.5, 0],ms=3")
	if err != nil {
		t.Fatal(err)
	}
	if o.Index != 2 || len(o.Pairs) != 3 {
		t.Fatalf("override = %+v", o)
	}
	want := []struct {
		p linespec.Property
		v string
	}{
		{linespec.LineStyle, "--"},
		{linespec.Color, "[1, 0.5, 0]"},
		{linespec.MarkerSize, "3"},
	}
	for i, w := range want {
		if o.Pairs[i].Property != w.p || o.Pairs[i].Value.String() != w.v {
			t.Errorf("pair %d = %v=%q, want %v=%q", i, o.Pairs[i].Property, o.Pairs[i].Value, w.p, w.v)
		}
	}
}

func TestParseStyleFlagErrors(t *testing.T) {
	tests := []struct {
		in   string
		code errors.Code
	}{
		{"marker=o", errors.ErrCodeInvalidInput},
		{"x:marker=o", errors.ErrCodeInvalidIndex},
		{"1:marker", errors.ErrCodeInvalidInput},
		{"1:fill=red", errors.ErrCodeInvalidProperty},
		{"1:", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := parseStyleFlag(tt.in)
			if errors.GetCode(err) != tt.code {
				t.Errorf("parseStyleFlag(%q) error = %v, want %s", tt.in, err, tt.code)
			}
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := splitTopLevel("a=1,c=(1,2,3),d=[0,1,0]")
	if len(got) != 3 || got[1] != "c=(1,2,3)" {
		t.Errorf("splitTopLevel() = %q", got)
	}
}
