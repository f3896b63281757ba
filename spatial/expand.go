package spatial

import (
	"errors"

	"geoframe/geohash"
)

// DefaultMaxCells bounds how many cells one expansion may touch. A probe
// resolution far finer than the viewport produces a large but finite walk;
// the cap keeps a bad frame cheap instead of stalling the loop.
const DefaultMaxCells = 4096

// ErrCellBudget is returned when an expansion hits its cell cap. The set built
// so far is still usable.
var ErrCellBudget = errors.New("spatial: viewport expansion exceeded cell budget")

// Expander walks geohash adjacency outward from a seed cell until cells stop
// intersecting the viewport box. It is an explicit worklist, not recursion:
// membership is checked before enqueue, which makes termination a property of
// the finite grid rather than of the geometry test alone.
type Expander struct {
	// MaxCells caps the walk; zero means DefaultMaxCells.
	MaxCells int
	// OnCell, if set, is called once per newly discovered cell. Debug/grid
	// rendering hook only; it must not touch index state.
	OnCell func(key string)
}

// Expand visits the seed cell and every reachable neighbor whose cell
// intersects view, adding each discovered key to set. The seed is included
// unconditionally. Neighbors join the set (and fire OnCell) even when their
// cell lies outside the viewport; the walk just does not continue from them.
// Returns keys in discovery order.
func (e *Expander) Expand(seed string, view geohash.BBox, set map[string]bool) ([]string, error) {
	max := e.MaxCells
	if max <= 0 {
		max = DefaultMaxCells
	}

	order := make([]string, 0, 16)
	work := make([]string, 0, 16)

	if !set[seed] {
		set[seed] = true
		order = append(order, seed)
		if e.OnCell != nil {
			e.OnCell(seed)
		}
	}
	work = append(work, seed)

	for len(work) > 0 {
		k := work[len(work)-1]
		work = work[:len(work)-1]

		for _, dir := range geohash.Directions {
			n := geohash.Neighbor(k, dir)
			if n == "" || set[n] {
				continue
			}

			set[n] = true
			order = append(order, n)
			if e.OnCell != nil {
				e.OnCell(n)
			}
			if len(order) > max {
				return order, ErrCellBudget
			}

			box, err := geohash.Box(n)
			if err != nil {
				continue
			}
			if box.Intersects(view) {
				work = append(work, n)
			}
		}
	}

	return order, nil
}
