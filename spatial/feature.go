// Package spatial maintains a geohash-keyed index of map features and answers
// per-frame viewport queries for a rendering host.
package spatial

import (
	"time"

	"geoframe/geohash"
)

// Feature is a map feature registered with the index. The index holds the
// handle, not a copy; only the screen rect is used to derive a key.
type Feature struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Key     string    `json:"key,omitempty"` // assigned at insertion
	Created time.Time `json:"created,omitempty"`
}

// Projection converts screen coordinates to geographic coordinates. The host
// owns the projection; only the insertion path uses it.
type Projection interface {
	ScreenToLat(y float64) float64
	ScreenToLon(x float64) float64
}

// LinearProjection is an equirectangular screen mapping: y grows downward from
// OriginLat, x grows rightward from OriginLon, DegPerPixel degrees per pixel.
type LinearProjection struct {
	OriginLat   float64
	OriginLon   float64
	DegPerPixel float64
}

func (p LinearProjection) ScreenToLat(y float64) float64 {
	return p.OriginLat - y*p.DegPerPixel
}

func (p LinearProjection) ScreenToLon(x float64) float64 {
	return p.OriginLon + x*p.DegPerPixel
}

// Viewport is the map state for one frame: reference point, zoom level and the
// visible bounding box.
type Viewport struct {
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
	Zoom float64      `json:"zoom"`
	BBox geohash.BBox `json:"bbox"`
}
