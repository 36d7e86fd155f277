package plot

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/terminal"
)

// Runner executes a gnuplot script found in dir.
type Runner interface {
	Run(ctx context.Context, dir, script string, persist bool) error
}

// GnuplotRunner runs scripts with the gnuplot executable.
type GnuplotRunner struct {
	// Binary is the gnuplot executable. Empty means terminal.DefaultBinary.
	Binary string
}

// Run invokes gnuplot on script with dir as the working directory. Screen
// scripts are run with -persist so the window outlives the process.
func (r *GnuplotRunner) Run(ctx context.Context, dir, script string, persist bool) error {
	bin := r.Binary
	if bin == "" {
		bin = terminal.DefaultBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err,
			"gnuplot is required to draw plots. Install with:\n  macOS:  brew install gnuplot\n  Linux:  apt install gnuplot")
	}

	var args []string
	if persist {
		args = append(args, "-persist")
	}
	args = append(args, script)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeExec, err, "gnuplot %s: %s", script, strings.TrimSpace(errBuf.String()))
	}
	return nil
}
