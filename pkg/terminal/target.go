// Package terminal decides which gnuplot terminal renders each output target
// and which line-style tables go with it.
//
// The gnuplot installation is asked about terminal support through an
// [Oracle]. [Probe] collects the answers into [Capabilities], and [Select]
// turns a [Target] plus those capabilities into a [Selection].
package terminal

import (
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// Target is a bit set of output targets.
type Target int

// Output targets. The values match the mode flags accepted by the library
// constructor, so masks can be combined with |.
const (
	Screen Target = 1 << iota
	PNG
	EPS
	PDF
	HTML
	SVG
)

// All selects every target.
const All = Screen | PNG | EPS | PDF | HTML | SVG

var targetNames = []struct {
	t    Target
	name string
	ext  string
}{
	{Screen, "screen", ""},
	{PNG, "png", ".png"},
	{EPS, "eps", ".eps"},
	{PDF, "pdf", ".pdf"},
	{HTML, "html", ".html"},
	{SVG, "svg", ".svg"},
}

// Has reports whether every bit of x is set in t.
func (t Target) Has(x Target) bool { return x != 0 && t&x == x }

// Each returns the single targets contained in t, screen first.
func (t Target) Each() []Target {
	var out []Target
	for _, n := range targetNames {
		if t&n.t != 0 {
			out = append(out, n.t)
		}
	}
	return out
}

// String returns the comma separated target names, or "none".
func (t Target) String() string {
	var names []string
	for _, n := range targetNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Ext returns the output file extension of a single export target. Screen
// and combined masks have none.
func (t Target) Ext() string {
	for _, n := range targetNames {
		if t == n.t {
			return n.ext
		}
	}
	return ""
}

// IsExport reports whether t is a single target that writes a file.
func (t Target) IsExport() bool { return t.Ext() != "" }

// TargetNames lists the accepted target names.
func TargetNames() []string {
	names := make([]string, len(targetNames))
	for i, n := range targetNames {
		names[i] = n.name
	}
	return names
}

// ParseTargets parses a comma separated list such as "screen,png". The
// word "all" selects every target.
func ParseTargets(s string) (Target, error) {
	var t Target
	for _, field := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" {
			continue
		}
		if name == "all" {
			t |= All
			continue
		}
		found := false
		for _, n := range targetNames {
			if n.name == name {
				t |= n.t
				found = true
				break
			}
		}
		if !found {
			return 0, errors.New(errors.ErrCodeInvalidTarget,
				"unknown target %q (must be one of %s, all)", name, strings.Join(TargetNames(), ", "))
		}
	}
	if t == 0 {
		return 0, errors.New(errors.ErrCodeInvalidTarget, "no output target given")
	}
	return t, nil
}
