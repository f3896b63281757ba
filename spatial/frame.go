package spatial

import (
	"log"
	"sort"
	"time"

	"geoframe/geohash"
)

// DefaultProbeSpan is the angular extent, in degrees at zoom 1, used to pick
// the probe resolution. Divided by the current zoom: higher zoom, smaller
// probe, finer keys.
const DefaultProbeSpan = 1.0

// Query answers per-frame viewport queries against an index. It never mutates
// the index; all working state lives for one Frame call and is discarded.
type Query struct {
	index     *Index
	expander  Expander
	probeSpan float64
	stats     *FrameStats
}

// QueryOptions configures a Query.
type QueryOptions struct {
	// ProbeSpan overrides DefaultProbeSpan.
	ProbeSpan float64
	// MaxCells caps viewport expansion; zero means DefaultMaxCells.
	MaxCells int
	// OnCell is invoked once per cell discovered during expansion.
	OnCell func(key string)
}

// NewQuery creates a Query over the index.
func NewQuery(index *Index, opts QueryOptions) *Query {
	span := opts.ProbeSpan
	if span <= 0 {
		span = DefaultProbeSpan
	}
	return &Query{
		index:     index,
		expander:  Expander{MaxCells: opts.MaxCells, OnCell: opts.OnCell},
		probeSpan: span,
		stats:     GetFrameStats(),
	}
}

// Frame is the result of one viewport query.
type Frame struct {
	// Resolution is the probe key length used for expansion.
	Resolution int `json:"resolution"`
	// Seed is the cell containing the viewport reference point.
	Seed string `json:"seed"`
	// Keys is the working key set, sorted.
	Keys []string `json:"keys"`
	// Cells are the keys discovered by expansion, in discovery order.
	Cells []string `json:"cells"`
	// Objects is the draw list: bucket lookups over Keys, concatenated and
	// reversed so fine-keyed features precede coarse-keyed ones, matching the
	// upward lookup convention.
	Objects []*Feature `json:"objects"`
}

// probeLength derives the probe key length from the zoom level.
func (q *Query) probeLength(zoom float64) int {
	defLen, limit := q.index.Limits()
	length := defLen
	if zoom > 0 {
		extent := q.probeSpan / zoom
		length = LengthForExtent(extent, extent)
	}
	if length < 1 {
		length = 1
	}
	if length > limit {
		length = limit
	}
	return length
}

// Frame runs one viewport query: pick a probe resolution from the zoom level,
// expand the viewport into a working key set, roll every key up to its
// ancestors, then assemble the draw list. The center key is also taken at the
// maximum length and rolled up, so features keyed finer than the probe are
// found along the center's ancestor chain.
func (q *Query) Frame(v Viewport) (*Frame, error) {
	start := time.Now()

	_, limit := q.index.Limits()
	res := q.probeLength(v.Zoom)

	full := geohash.Encode(v.Lat, v.Lon, limit)
	seed := full[:res]

	set := make(map[string]bool)
	Rollup(full, limit, set)

	cells, err := q.expander.Expand(seed, v.BBox, set)
	if err != nil {
		log.Printf("[frame] expansion capped at %d cells: %v", len(cells), err)
	}
	for _, k := range cells {
		Rollup(k, limit, set)
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var objects []*Feature
	for _, k := range keys {
		objects = append(objects, q.index.Lookup(k)...)
	}
	for i, j := 0, len(objects)-1; i < j; i, j = i+1, j-1 {
		objects[i], objects[j] = objects[j], objects[i]
	}

	q.stats.RecordFrame(len(cells), len(keys), len(objects), time.Since(start))

	return &Frame{
		Resolution: res,
		Seed:       seed,
		Keys:       keys,
		Cells:      cells,
		Objects:    objects,
	}, err
}
