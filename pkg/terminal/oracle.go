package terminal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/eggplot/pkg/cache"
	"github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/observability"
)

// Oracle answers whether the local gnuplot supports a terminal.
type Oracle interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// DefaultBinary is the gnuplot executable looked up on PATH.
const DefaultBinary = "gnuplot"

// GnuplotOracle asks a gnuplot binary by printing a flag to a side channel
// file. The file is always removed before Exists returns.
type GnuplotOracle struct {
	// Binary is the gnuplot executable. Empty means DefaultBinary.
	Binary string
	// Dir holds side channel files. Empty means os.TempDir().
	Dir string
	// Prefix starts every side channel file name. Empty means "eggp".
	Prefix string
	Logger *log.Logger
}

// NewGnuplotOracle returns an oracle for the given binary.
func NewGnuplotOracle(binary string, logger *log.Logger) *GnuplotOracle {
	return &GnuplotOracle{Binary: binary, Logger: logger}
}

func (o *GnuplotOracle) binary() string {
	if o.Binary == "" {
		return DefaultBinary
	}
	return o.Binary
}

func (o *GnuplotOracle) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// sideChannel returns a fresh side channel path for one probe.
func (o *GnuplotOracle) sideChannel(name string) string {
	dir := o.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	prefix := o.Prefix
	if prefix == "" {
		prefix = "eggp"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-exists-%s-%s", prefix, name, uuid.NewString()))
}

// Command returns the gnuplot expression that writes 1 or 0 to path.
func Command(path, name string) string {
	return fmt.Sprintf("set print '%s'; if (strstrt(GPVAL_TERMINALS, '%s')) print 1; else print 0",
		strings.ReplaceAll(path, "'", "''"), name)
}

// Exists runs gnuplot once and reads the answer back.
func (o *GnuplotOracle) Exists(ctx context.Context, name string) (bool, error) {
	if err := errors.ValidateTerminalName(name); err != nil {
		return false, err
	}
	bin := o.binary()
	if _, err := exec.LookPath(bin); err != nil {
		return false, errors.Wrap(errors.ErrCodeNotFound, err, "gnuplot executable %q not found", bin)
	}

	start := time.Now()
	observability.Probe().OnProbeStart(ctx, name)
	ok, err := o.exists(ctx, bin, name)
	observability.Probe().OnProbeComplete(ctx, name, ok, time.Since(start), err)
	return ok, err
}

func (o *GnuplotOracle) exists(ctx context.Context, bin, name string) (bool, error) {
	path := o.sideChannel(name)
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, bin, "-e", Command(path, name))
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return false, errors.Wrap(errors.ErrCodeExec, err, "probe terminal %s: %s", name, strings.TrimSpace(errBuf.String()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeExec, err, "probe terminal %s: read answer", name)
	}
	ok := strings.TrimSpace(string(data)) == "1"
	o.logger().Debug("probed terminal", "terminal", name, "available", ok)
	return ok, nil
}

// StaticOracle answers from a fixed set. Missing names are unsupported.
type StaticOracle map[string]bool

// Exists reports the stored answer.
func (s StaticOracle) Exists(_ context.Context, name string) (bool, error) {
	return s[name], nil
}

// CachedOracle remembers the answers of another oracle.
type CachedOracle struct {
	Oracle Oracle
	Cache  cache.Cache
	Keyer  cache.Keyer
	// Binary identifies the gnuplot installation in cache keys.
	Binary string
	TTL    time.Duration
}

// NewCachedOracle wraps o. A nil cache disables caching.
func NewCachedOracle(o Oracle, c cache.Cache, binary string, ttl time.Duration) *CachedOracle {
	if c == nil {
		c = cache.NewNullCache()
	}
	if binary == "" {
		binary = DefaultBinary
	}
	return &CachedOracle{Oracle: o, Cache: c, Keyer: cache.NewDefaultKeyer(), Binary: binary, TTL: ttl}
}

// Exists consults the cache before asking the wrapped oracle. Cache errors
// are treated as misses.
func (c *CachedOracle) Exists(ctx context.Context, name string) (bool, error) {
	key := c.Keyer.ProbeKey(c.Binary, name)
	if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit && len(data) == 1 {
		observability.Cache().OnCacheHit(ctx, "probe")
		return data[0] == '1', nil
	}
	observability.Cache().OnCacheMiss(ctx, "probe")

	ok, err := c.Oracle.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	flag := []byte{'0'}
	if ok {
		flag[0] = '1'
	}
	if err := c.Cache.Set(ctx, key, flag, c.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "probe", len(flag))
	}
	return ok, nil
}
