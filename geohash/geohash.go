// Package geohash converts between lat/lon coordinates and geohash strings
// and computes cell adjacency. Shorter keys are coarser cells; every key is a
// prefix-extension of its parent.
package geohash

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// MaxLength is the finest key length the codec produces.
const MaxLength = 12

// Direction is one of the four cardinal neighbor directions.
type Direction string

const (
	Top    Direction = "top"
	Bottom Direction = "bottom"
	Left   Direction = "left"
	Right  Direction = "right"
)

// Directions in the order the expander walks them.
var Directions = []Direction{Top, Bottom, Left, Right}

// BBox is a lat/lon aligned bounding box.
type BBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Intersects reports whether the two boxes overlap in both axes.
func (b BBox) Intersects(o BBox) bool {
	return b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat &&
		b.MinLon <= o.MaxLon && b.MaxLon >= o.MinLon
}

// Contains reports whether the point lies inside the box.
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Neighbor lookup tables. The last character of a hash subdivides lon-first or
// lat-first depending on whether the hash length is even or odd, hence the two
// rows per direction.
var (
	neighborEven = map[Direction]string{
		Top:    "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
		Bottom: "14365h7k9dcfesgujnmqp0r2twvyx8zb",
		Right:  "bc01fg45238967deuvhjyznpkmstqrwx",
		Left:   "238967debc01fg45kmstqrwxuvhjyznp",
	}
	neighborOdd = map[Direction]string{
		Top:    "bc01fg45238967deuvhjyznpkmstqrwx",
		Bottom: "238967debc01fg45kmstqrwxuvhjyznp",
		Right:  "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
		Left:   "14365h7k9dcfesgujnmqp0r2twvyx8zb",
	}
	borderEven = map[Direction]string{
		Top:    "prxz",
		Bottom: "028b",
		Right:  "bcfguvyz",
		Left:   "0145hjnp",
	}
	borderOdd = map[Direction]string{
		Top:    "bcfguvyz",
		Bottom: "0145hjnp",
		Right:  "prxz",
		Left:   "028b",
	}
)

var base32Index = map[byte]int{}

func init() {
	for i := 0; i < len(base32); i++ {
		base32Index[base32[i]] = i
	}
}

// Valid reports whether key is a non-empty string over the geohash alphabet.
func Valid(key string) bool {
	if len(key) == 0 {
		return false
	}
	for i := 0; i < len(key); i++ {
		if _, ok := base32Index[key[i]]; !ok {
			return false
		}
	}
	return true
}

// Encode converts lat/lon into a geohash key of the given length.
func Encode(lat, lon float64, length int) string {
	if length < 1 {
		length = 1
	}
	if length > MaxLength {
		length = MaxLength
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0

	var hash strings.Builder
	even := true
	bit := 0
	ch := 0

	for hash.Len() < length {
		if even {
			mid := (minLon + maxLon) / 2
			if lon >= mid {
				ch |= 1 << (4 - bit)
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		even = !even

		bit++
		if bit == 5 {
			hash.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return hash.String()
}

// decode cache. Frames re-decode the same frontier cells constantly, so boxes
// are memoized the same way streams are cached upstream.
const boxCacheSize = 4096

var (
	boxMu    sync.Mutex
	boxCache = lru.New(boxCacheSize)
	boxHits  int64
	boxMiss  int64
)

// CacheStats returns decode cache hit/miss counts.
func CacheStats() (hits, misses int64) {
	boxMu.Lock()
	defer boxMu.Unlock()
	return boxHits, boxMiss
}

// Box returns the bounding box of the cell denoted by key.
func Box(key string) (BBox, error) {
	if !Valid(key) {
		return BBox{}, fmt.Errorf("geohash: invalid key %q", key)
	}

	boxMu.Lock()
	if v, ok := boxCache.Get(key); ok {
		boxHits++
		boxMu.Unlock()
		return v.(BBox), nil
	}
	boxMiss++
	boxMu.Unlock()

	b := decodeBox(key)

	boxMu.Lock()
	boxCache.Add(key, b)
	boxMu.Unlock()

	return b, nil
}

func decodeBox(key string) BBox {
	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	even := true

	for i := 0; i < len(key); i++ {
		cd := base32Index[key[i]]
		for j := 4; j >= 0; j-- {
			bit := (cd >> j) & 1
			if even {
				mid := (minLon + maxLon) / 2
				if bit == 1 {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if bit == 1 {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			even = !even
		}
	}

	return BBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
}

// Center returns the midpoint of the cell denoted by key.
func Center(key string) (lat, lon float64, err error) {
	b, err := Box(key)
	if err != nil {
		return 0, 0, err
	}
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2, nil
}

// Neighbor returns the same-length key of the adjacent cell in the given
// direction. Crossing a parent-cell border recurses into the parent, so
// Neighbor(Neighbor(k, Left), Right) == k holds across cell boundaries.
func Neighbor(key string, dir Direction) string {
	if len(key) == 0 {
		return ""
	}

	last := key[len(key)-1]
	parent := key[:len(key)-1]

	neighbor := neighborEven[dir]
	border := borderEven[dir]
	if len(key)%2 == 1 {
		neighbor = neighborOdd[dir]
		border = borderOdd[dir]
	}

	if strings.IndexByte(border, last) >= 0 && len(parent) > 0 {
		parent = Neighbor(parent, dir)
	}

	idx := strings.IndexByte(neighbor, last)
	if idx < 0 {
		return key
	}
	return parent + string(base32[idx])
}
