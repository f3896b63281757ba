package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"geoframe/spatial"
)

func parseFloat(r *http.Request, name string, def float64) float64 {
	v, err := strconv.ParseFloat(r.Form.Get(name), 64)
	if err != nil {
		return def
	}
	return v
}

// viewportFromRequest builds a viewport from query params. Missing bbox edges
// default to a one-degree box around the center.
func viewportFromRequest(r *http.Request) spatial.Viewport {
	lat := parseFloat(r, "lat", 51.45)
	lon := parseFloat(r, "lon", -0.35)
	zoom := parseFloat(r, "zoom", 0)

	v := spatial.Viewport{Lat: lat, Lon: lon, Zoom: zoom}
	v.BBox.MinLat = parseFloat(r, "minLat", lat-0.5)
	v.BBox.MaxLat = parseFloat(r, "maxLat", lat+0.5)
	v.BBox.MinLon = parseFloat(r, "minLon", lon-0.5)
	v.BBox.MaxLon = parseFloat(r, "maxLon", lon+0.5)
	return v
}

// GetFrameHandler runs one viewport query and returns the frame as JSON.
func (s *Server) GetFrameHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	frame, err := s.Query.Frame(viewportFromRequest(r))
	if err != nil && frame == nil {
		http.Error(w, err.Error(), 500)
		return
	}

	b, _ := json.Marshal(frameResponse(frame))
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// PostFeatureHandler registers a feature from form values x, y, width, height
// and an optional name, persists it and returns the assigned key.
func (s *Server) PostFeatureHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	f := &spatial.Feature{
		ID:      uuid.New().String(),
		Name:    r.Form.Get("name"),
		X:       parseFloat(r, "x", 0),
		Y:       parseFloat(r, "y", 0),
		Width:   parseFloat(r, "width", 0),
		Height:  parseFloat(r, "height", 0),
		Created: time.Now(),
	}

	key, err := s.Index.Put(f, s.Proj)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	if s.Store != nil {
		if err := s.Store.Save(f); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	}

	b, _ := json.Marshal(map[string]interface{}{
		"id":  f.ID,
		"key": key,
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// GetFeaturesHandler returns the bucket for a key, its ancestor chain included
// when upward=true, or every indexed key when no key is given.
func (s *Server) GetFeaturesHandler(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	key := r.Form.Get("key")
	if key == "" {
		b, _ := json.Marshal(map[string]interface{}{
			"keys":  s.Index.Keys(),
			"count": s.Index.Count(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(b)
		return
	}

	var features []*spatial.Feature
	if upward, _ := strconv.ParseBool(r.Form.Get("upward")); upward {
		features = s.Index.LookupUpward(key)
	} else {
		features = s.Index.Lookup(key)
	}

	b, _ := json.Marshal(features)
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// GetStatsHandler returns frame query statistics.
func (s *Server) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	b, _ := json.Marshal(spatial.GetFrameStats().Summary())
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// SetHeaders sets CORS headers for all responses.
func SetHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func WithCors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetHeaders(w, r)

		// if options return immediately
		if r.Method == "OPTIONS" {
			return
		}

		h.ServeHTTP(w, r)
	})
}
