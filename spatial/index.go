package spatial

import (
	"fmt"
	"math"
	"sync"

	"geoframe/geohash"
)

const (
	// DefaultLength is the key length used when none can be computed.
	DefaultLength = 6
	// DefaultLimitBottom caps key length; longer keys are truncated.
	DefaultLimitBottom = 8
)

// Options configures an Index. Set before first use, immutable after.
type Options struct {
	DefaultLength int
	LimitBottom   int
}

func (o Options) withDefaults() Options {
	if o.DefaultLength <= 0 {
		o.DefaultLength = DefaultLength
	}
	if o.LimitBottom <= 0 {
		o.LimitBottom = DefaultLimitBottom
	}
	if o.LimitBottom > geohash.MaxLength {
		o.LimitBottom = geohash.MaxLength
	}
	return o
}

// Index maps geohash keys to the features registered under them. Buckets keep
// insertion order and repeated insertions; a feature lives under exactly one
// key and is never re-indexed on move. All access is serialized behind one
// lock so a multi-threaded host can share it.
type Index struct {
	mu      sync.RWMutex
	opts    Options
	buckets map[string][]*Feature
}

// NewIndex creates an empty index.
func NewIndex(opts Options) *Index {
	return &Index{
		opts:    opts.withDefaults(),
		buckets: make(map[string][]*Feature),
	}
}

// Limits returns the configured default and maximum key lengths.
func (i *Index) Limits() (defaultLength, limitBottom int) {
	return i.opts.DefaultLength, i.opts.LimitBottom
}

// Insert appends the feature to the bucket for key, creating the bucket if
// absent. Keys longer than the limit are truncated; empty or malformed keys
// fail fast.
func (i *Index) Insert(key string, f *Feature) error {
	if !geohash.Valid(key) {
		return fmt.Errorf("index: bad key %q", key)
	}
	if len(key) > i.opts.LimitBottom {
		key = key[:i.opts.LimitBottom]
	}

	i.mu.Lock()
	i.buckets[key] = append(i.buckets[key], f)
	i.mu.Unlock()

	f.Key = key
	return nil
}

// Lookup returns the bucket for key, or an empty slice if none exists.
func (i *Index) Lookup(key string) []*Feature {
	i.mu.RLock()
	defer i.mu.RUnlock()

	bucket := i.buckets[key]
	out := make([]*Feature, len(bucket))
	copy(out, bucket)
	return out
}

// LookupUpward returns the bucket for key followed by the buckets of every
// ancestor prefix down to length 1, finer to coarser. Results are concatenated
// as-is; a feature reachable through more than one call is repeated.
func (i *Index) LookupUpward(key string) []*Feature {
	if len(key) > i.opts.LimitBottom {
		key = key[:i.opts.LimitBottom]
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var out []*Feature
	for k := key; len(k) >= 1; k = k[:len(k)-1] {
		out = append(out, i.buckets[k]...)
	}
	return out
}

// Put derives a key for the feature from its screen rect and inserts it. The
// key length is the coarsest at which the feature still fits inside one cell,
// clamped to [1, LimitBottom]. Returns the assigned key.
func (i *Index) Put(f *Feature, proj Projection) (string, error) {
	lat := proj.ScreenToLat(f.Y)
	lon := proj.ScreenToLon(f.X)

	widthDeg := math.Abs(proj.ScreenToLon(f.X+f.Width) - lon)
	heightDeg := math.Abs(proj.ScreenToLat(f.Y+f.Height) - lat)

	length := LengthForExtent(widthDeg, heightDeg)
	if length < 1 {
		length = 1
	}
	if length > i.opts.LimitBottom {
		length = i.opts.LimitBottom
	}

	key := geohash.Encode(lat, lon, length)
	if err := i.Insert(key, f); err != nil {
		return "", err
	}
	return key, nil
}

// Keys returns every key with a non-empty bucket.
func (i *Index) Keys() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	keys := make([]string, 0, len(i.buckets))
	for k := range i.buckets {
		keys = append(keys, k)
	}
	return keys
}

// Count returns the total number of registered features.
func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	count := 0
	for _, bucket := range i.buckets {
		count += len(bucket)
	}
	return count
}
