package terminal

import (
	"context"
	"fmt"
)

// Terminal names probed at start-up.
const (
	Aqua    = "aqua"
	Wxt     = "wxt"
	Cairo   = "cairo"
	Canvas  = "canvas"
	SVGTerm = "svg"
)

// Probed lists the terminals Probe asks about, in order.
var Probed = []string{Aqua, Wxt, Cairo, Canvas, SVGTerm}

// Capabilities records which terminals the gnuplot installation offers.
type Capabilities struct {
	Aqua   bool
	Wxt    bool
	Cairo  bool
	Canvas bool
	SVG    bool
}

// Has reports support for one of the probed terminal names.
func (c Capabilities) Has(name string) bool {
	switch name {
	case Aqua:
		return c.Aqua
	case Wxt:
		return c.Wxt
	case Cairo:
		return c.Cairo
	case Canvas:
		return c.Canvas
	case SVGTerm:
		return c.SVG
	}
	return false
}

// Probe asks o about every terminal in Probed.
func Probe(ctx context.Context, o Oracle) (Capabilities, error) {
	var c Capabilities
	for _, name := range Probed {
		ok, err := o.Exists(ctx, name)
		if err != nil {
			return Capabilities{}, fmt.Errorf("probe %s: %w", name, err)
		}
		switch name {
		case Aqua:
			c.Aqua = ok
		case Wxt:
			c.Wxt = ok
		case Cairo:
			c.Cairo = ok
		case Canvas:
			c.Canvas = ok
		case SVGTerm:
			c.SVG = ok
		}
	}
	return c, nil
}
