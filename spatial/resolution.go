package spatial

// Geohash cell extents in degrees by key length. A key of length L carries 5L
// bits split between longitude (first) and latitude, so cells halve in one
// axis per bit: latitude spans 180/2^floor(5L/2) degrees, longitude
// 360/2^ceil(5L/2). Index 0 is the whole planet.
var (
	cellLatHeight = [13]float64{
		180,
		45,
		5.625,
		1.40625,
		0.17578125,
		0.0439453125,
		0.0054931640625,
		0.001373291015625,
		0.000171661376953125,
		4.291534423828125e-05,
		5.364418029785156e-06,
		1.3411045074462891e-06,
		1.6763806343078613e-07,
	}
	cellLonWidth = [13]float64{
		360,
		45,
		11.25,
		1.40625,
		0.3515625,
		0.0439453125,
		0.010986328125,
		0.001373291015625,
		0.00034332275390625,
		4.291534423828125e-05,
		1.0728836059570312e-05,
		1.3411045074462891e-06,
		3.3527612686157227e-07,
	}
)

// lengthFor returns the largest key length whose cell extent in the given
// table is no smaller than extent. Extents above the coarsest threshold map to
// 0 (whole planet); extents at or below the finest map to the maximum length.
func lengthFor(extent float64, table *[13]float64) int {
	if extent <= 0 {
		return len(table) - 1
	}
	for l := len(table) - 1; l >= 1; l-- {
		if table[l] >= extent {
			return l
		}
	}
	return 0
}

// LengthForExtent picks the coarsest geohash length at which a feature of the
// given angular extents still fits inside one cell in both axes. Deterministic
// and pure; smaller extents never get a coarser length than larger ones.
func LengthForExtent(widthDeg, heightDeg float64) int {
	latLen := lengthFor(heightDeg, &cellLatHeight)
	lonLen := lengthFor(widthDeg, &cellLonWidth)
	if latLen < lonLen {
		return latLen
	}
	return lonLen
}
