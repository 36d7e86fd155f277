package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
)

// parseStyleFlag parses a --style value of the form
// "<curve>:<property>=<value>,<property>=<value>". Commas inside brackets or
// parentheses belong to colour triples and do not separate assignments:
//
//	2:linestyle=--,color=[1,0.5,0]
func parseStyleFlag(s string) (linespec.Override, error) {
	head, rest, ok := strings.Cut(s, ":")
	if !ok {
		return linespec.Override{}, errors.New(errors.ErrCodeInvalidInput,
			"style %q must look like <curve>:<property>=<value>,...", s)
	}
	index, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return linespec.Override{}, errors.New(errors.ErrCodeInvalidIndex,
			"Line index must be a positive integer, got %q", head)
	}

	o := linespec.Override{Index: index}
	for _, assignment := range splitTopLevel(rest) {
		if strings.TrimSpace(assignment) == "" {
			continue
		}
		key, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return linespec.Override{}, errors.New(errors.ErrCodeInvalidInput,
				"style assignment %q must look like <property>=<value>", assignment)
		}
		p, err := linespec.ParseProperty(key)
		if err != nil {
			return linespec.Override{}, err
		}
		o.Pairs = append(o.Pairs, linespec.P(p, strings.TrimSpace(value)))
	}
	if len(o.Pairs) == 0 {
		return linespec.Override{}, errors.New(errors.ErrCodeInvalidInput, "style %q sets no properties", s)
	}
	return o, nil
}

// splitTopLevel splits on commas that are not nested in [] or ().
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
