package geohash

import "testing"

// TestEncodeKnownLocations checks encoding against published geohash values
func TestEncodeKnownLocations(t *testing.T) {
	testCases := []struct {
		name   string
		lat    float64
		lon    float64
		length int
		want   string
	}{
		{"San Francisco", 37.7749, -122.4194, 5, "9q8yy"},
		{"San Francisco fine", 37.7749, -122.4194, 7, "9q8yyk8"},
		{"Jutland", 57.64911, 10.40744, 11, "u4pruydqqvj"},
		{"Null island", 0, 0, 1, "s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.lat, tc.lon, tc.length)
			if got != tc.want {
				t.Errorf("Encode(%v, %v, %d) = %q, want %q", tc.lat, tc.lon, tc.length, got, tc.want)
			}
		})
	}
}

func TestEncodeClampsLength(t *testing.T) {
	if got := Encode(51.5, -0.1, 0); len(got) != 1 {
		t.Errorf("length 0 should clamp to 1, got %q", got)
	}
	if got := Encode(51.5, -0.1, 99); len(got) != MaxLength {
		t.Errorf("length 99 should clamp to %d, got %q", MaxLength, got)
	}
}

func TestBoxContainsEncodedPoint(t *testing.T) {
	lat, lon := 37.7749, -122.4194
	for length := 1; length <= 8; length++ {
		key := Encode(lat, lon, length)
		box, err := Box(key)
		if err != nil {
			t.Fatalf("Box(%q): %v", key, err)
		}
		if !box.Contains(lat, lon) {
			t.Errorf("box of %q does not contain the encoded point", key)
		}
	}
}

// TestParentBoxContainsChildBox verifies prefix cells nest spatially
func TestParentBoxContainsChildBox(t *testing.T) {
	key := "9q8yyk8"
	child, err := Box(key)
	if err != nil {
		t.Fatal(err)
	}

	for l := len(key) - 1; l >= 1; l-- {
		parent, err := Box(key[:l])
		if err != nil {
			t.Fatal(err)
		}
		if parent.MinLat > child.MinLat || parent.MaxLat < child.MaxLat ||
			parent.MinLon > child.MinLon || parent.MaxLon < child.MaxLon {
			t.Errorf("box of %q does not contain box of %q", key[:l], key)
		}
	}
}

func TestBoxRejectsBadKey(t *testing.T) {
	for _, key := range []string{"", "abc", "9q8!y"} {
		if _, err := Box(key); err == nil {
			t.Errorf("Box(%q) should fail", key)
		}
	}
}

func TestNeighborAdjacentCells(t *testing.T) {
	if got := Neighbor("9q8yy", Right); got != "9q8yz" {
		t.Errorf("right of 9q8yy = %q, want 9q8yz", got)
	}
	if got := Neighbor("9q8yz", Left); got != "9q8yy" {
		t.Errorf("left of 9q8yz = %q, want 9q8yy", got)
	}
}

// TestNeighborInverse checks adjacent(adjacent(k, left), right) == k and the
// same for the other axis, including across parent-cell borders
func TestNeighborInverse(t *testing.T) {
	keys := []string{"9", "9q", "9q8", "9q8y", "9q8yy", "9q8yz", "u4pruy", "gbsuv"}
	pairs := []struct{ a, b Direction }{
		{Left, Right},
		{Right, Left},
		{Top, Bottom},
		{Bottom, Top},
	}

	for _, key := range keys {
		for _, p := range pairs {
			n := Neighbor(key, p.a)
			if n == "" {
				t.Fatalf("Neighbor(%q, %s) returned empty", key, p.a)
			}
			if len(n) != len(key) {
				t.Errorf("Neighbor(%q, %s) = %q changed length", key, p.a, n)
			}
			back := Neighbor(n, p.b)
			if back != key {
				t.Errorf("Neighbor(Neighbor(%q, %s), %s) = %q, want %q", key, p.a, p.b, back, key)
			}
		}
	}
}

// TestNeighborSharesEdge verifies the neighbor's box touches the source box
func TestNeighborSharesEdge(t *testing.T) {
	key := "9q8yy"
	box, _ := Box(key)

	right, _ := Box(Neighbor(key, Right))
	if right.MinLon != box.MaxLon {
		t.Errorf("right neighbor min lon %v, want %v", right.MinLon, box.MaxLon)
	}

	top, _ := Box(Neighbor(key, Top))
	if top.MinLat != box.MaxLat {
		t.Errorf("top neighbor min lat %v, want %v", top.MinLat, box.MaxLat)
	}
}

func TestValid(t *testing.T) {
	testCases := []struct {
		key  string
		want bool
	}{
		{"9q8yy", true},
		{"0", true},
		{"", false},
		{"9q8a", false}, // 'a' is not in the geohash alphabet
		{"9Q8", false},
	}

	for _, tc := range testCases {
		if got := Valid(tc.key); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestBBoxIntersects(t *testing.T) {
	a := BBox{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}

	if !a.Intersects(BBox{MinLat: 5, MaxLat: 15, MinLon: 5, MaxLon: 15}) {
		t.Error("overlapping boxes should intersect")
	}
	if !a.Intersects(BBox{MinLat: 10, MaxLat: 20, MinLon: 0, MaxLon: 10}) {
		t.Error("boxes sharing an edge should intersect")
	}
	if a.Intersects(BBox{MinLat: 11, MaxLat: 20, MinLon: 0, MaxLon: 10}) {
		t.Error("disjoint boxes should not intersect")
	}
}
