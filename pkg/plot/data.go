package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/eggplot/pkg/errors"
)

// encodeData writes curves as comma separated blocks. Each block starts with
// a "# Curve i" comment (0-based) and ends with two blank lines so gnuplot
// can address it with "index i".
func encodeData(curves []Curve) []byte {
	var buf bytes.Buffer
	for i, c := range curves {
		buf.WriteString("# Curve ")
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte('\n')
		for j := range c.X {
			buf.WriteString(formatFloat(c.X[j]))
			buf.WriteByte(',')
			buf.WriteString(formatFloat(c.Y[j]))
			buf.WriteByte('\n')
		}
		buf.WriteString("\n\n")
	}
	return buf.Bytes()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write stores the data file and all scripts in dir.
func (b *Build) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}
	if err := writeFile(filepath.Join(dir, b.DataName), b.Data); err != nil {
		return err
	}
	for _, s := range b.Scripts {
		if err := writeFile(filepath.Join(dir, s.Name), []byte(s.Text)); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
