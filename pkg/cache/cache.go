// Package cache stores terminal probe results between eggplot runs.
//
// Probing gnuplot for a terminal spawns one subprocess per terminal, which is
// noticeable on every plot. The results rarely change, so they are cached
// with a TTL behind the [Cache] interface:
//
//   - [FileCache]: JSON files under the XDG cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance (used by "eggplot serve")
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that different gnuplot installations
// never share entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DefaultProbeTTL is how long a terminal probe result stays valid.
const DefaultProbeTTL = 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ProbeKey returns the key of the availability flag of a terminal for the
	// given gnuplot binary.
	ProbeKey(binary, terminal string) string
}

// DefaultKeyer produces "probe:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProbeKey implements Keyer.
func (DefaultKeyer) ProbeKey(binary, terminal string) string {
	return hashKey("probe", binary, terminal)
}
