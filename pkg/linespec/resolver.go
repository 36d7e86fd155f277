package linespec

import (
	"fmt"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// Override is one recorded style directive for a curve.
type Override struct {
	Index int
	Pairs []Pair
}

// Resolver collects style overrides for one figure and turns them into one
// Record per curve. It also owns the line counter used to number records.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	overrides []Override
	count     int
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Set records a single property override for a 1-based curve index.
func (r *Resolver) Set(index int, p Property, v Value) error {
	return r.SetAll(index, Pair{Property: p, Value: v})
}

// SetAll records several property overrides for a curve, in order. Every
// value is validated before anything is recorded, so a failing call leaves
// the resolver unchanged. Indices beyond the final curve count are accepted
// here and dropped by Resolve.
func (r *Resolver) SetAll(index int, pairs ...Pair) error {
	if index < 1 {
		return errors.New(errors.ErrCodeInvalidIndex, "Line index must be a positive integer, got %d", index)
	}
	scratch := NewRecord(index)
	for _, pair := range pairs {
		if err := scratch.SetPair(pair); err != nil {
			return fmt.Errorf("line %d: %w", index, err)
		}
	}
	r.overrides = append(r.overrides, Override{Index: index, Pairs: append([]Pair(nil), pairs...)})
	return nil
}

// Overrides returns a copy of the recorded overrides in receipt order.
func (r *Resolver) Overrides() []Override {
	out := make([]Override, len(r.overrides))
	for i, o := range r.overrides {
		out[i] = Override{Index: o.Index, Pairs: append([]Pair(nil), o.Pairs...)}
	}
	return out
}

// Reset sets the line counter back to zero.
func (r *Resolver) Reset() {
	r.count = 0
}

// Next advances the line counter and returns the new line index.
func (r *Resolver) Next() int {
	r.count++
	return r.count
}

// Resolve builds the records of a plot with curveCount curves. The line
// counter is reset first, so records are always numbered 1..curveCount.
// Overrides are replayed in receipt order; later ones win per property.
func (r *Resolver) Resolve(curveCount int) ([]*Record, error) {
	if curveCount < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "curve count must not be negative, got %d", curveCount)
	}
	r.Reset()
	records := make([]*Record, curveCount)
	for i := range records {
		records[i] = NewRecord(r.Next())
	}
	for _, o := range r.overrides {
		if o.Index > curveCount {
			continue
		}
		rec := records[o.Index-1]
		for _, pair := range o.Pairs {
			if err := rec.SetPair(pair); err != nil {
				return nil, fmt.Errorf("line %d: %w", o.Index, err)
			}
		}
	}
	return records, nil
}

// RenderAll renders every record against one table pair.
func RenderAll(records []*Record, t *Tables) ([]string, error) {
	lines := make([]string, len(records))
	for i, rec := range records {
		line, err := rec.Render(t)
		if err != nil {
			return nil, fmt.Errorf("line %d (%s): %w", rec.Index(), t.Name(), err)
		}
		lines[i] = line
	}
	return lines, nil
}
