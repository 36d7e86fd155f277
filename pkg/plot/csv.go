package plot

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// ReadColumns reads comma separated numeric columns. A first row that does
// not parse as numbers is returned as the header. Lines starting with '#'
// are skipped.
func ReadColumns(r io.Reader) (header []string, columns [][]float64, err error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read csv")
		}
		row++

		values, ok := parseRow(rec)
		if !ok {
			if row == 1 {
				header = rec
				continue
			}
			return nil, nil, errors.New(errors.ErrCodeInvalidData, "row %d: non-numeric value in %q", row, strings.Join(rec, ","))
		}
		if columns == nil {
			columns = make([][]float64, len(values))
		}
		for i, v := range values {
			columns[i] = append(columns[i], v)
		}
	}
	if len(columns) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidData, "no data rows")
	}
	return header, columns, nil
}

func parseRow(rec []string) ([]float64, bool) {
	values := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// Pair arranges columns into the x1, y1, x2, y2, ... order Plot expects.
// With sharedX the first column is the x vector of every other column.
func Pair(columns [][]float64, sharedX bool) ([][]float64, error) {
	if !sharedX {
		return columns, nil
	}
	if len(columns) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidData, "shared x needs at least two columns, got %d", len(columns))
	}
	out := make([][]float64, 0, 2*(len(columns)-1))
	for _, y := range columns[1:] {
		out = append(out, columns[0], y)
	}
	return out, nil
}
