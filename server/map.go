package server

import (
	_ "embed"
	"net/http"

	"geoframe/geohash"
	"geoframe/spatial"
)

//go:embed map.html
var mapHTML []byte

func serveMapHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write(mapHTML)
}

// MapCell is a visited cell with its decoded box, for grid rendering.
type MapCell struct {
	Key string       `json:"key"`
	Box geohash.BBox `json:"box"`
}

// MapFrame is the wire form of a frame for the map view and the socket.
type MapFrame struct {
	Resolution int                `json:"resolution"`
	Seed       string             `json:"seed"`
	Keys       []string           `json:"keys"`
	Cells      []MapCell          `json:"cells"`
	Objects    []*spatial.Feature `json:"objects"`
}

// frameResponse decorates a frame with cell boxes. Rendering of the boxes is
// entirely client-side.
func frameResponse(frame *spatial.Frame) *MapFrame {
	cells := make([]MapCell, 0, len(frame.Cells))
	for _, key := range frame.Cells {
		box, err := geohash.Box(key)
		if err != nil {
			continue
		}
		cells = append(cells, MapCell{Key: key, Box: box})
	}

	return &MapFrame{
		Resolution: frame.Resolution,
		Seed:       frame.Seed,
		Keys:       frame.Keys,
		Cells:      cells,
		Objects:    frame.Objects,
	}
}
