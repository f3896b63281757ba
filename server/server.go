// Package server hosts the spatial index over HTTP: a JSON frame endpoint for
// renderers, a websocket viewport stream, feature registration, and an
// embedded debug map.
package server

import (
	"log"
	"net/http"

	"geoframe/data"
	"geoframe/spatial"
)

// Server wires the index, the per-frame query and the feature catalog.
type Server struct {
	Index *spatial.Index
	Query *spatial.Query
	Store *data.Store // optional; nil disables persistence
	Proj  spatial.Projection
}

// New creates a server over the index. The store may be nil.
func New(index *spatial.Index, store *data.Store, proj spatial.Projection) *Server {
	return &Server{
		Index: index,
		Query: spatial.NewQuery(index, spatial.QueryOptions{}),
		Store: store,
		Proj:  proj,
	}
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		serveMapHTML(w, r)
	})

	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.GetFrameHandler(w, r)
		default:
			http.Error(w, "unsupported method "+r.Method, 400)
		}
	})

	mux.HandleFunc("/features", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.GetFeaturesHandler(w, r)
		case http.MethodPost:
			s.PostFeatureHandler(w, r)
		default:
			http.Error(w, "unsupported method "+r.Method, 400)
		}
	})

	mux.HandleFunc("/stats", s.GetStatsHandler)
	mux.HandleFunc("/events", s.GetEvents)

	return WithCors(mux)
}

// ListenAndServe runs the server on address.
func (s *Server) ListenAndServe(address string) error {
	log.Printf("[server] listening on %s", address)
	return http.ListenAndServe(address, s.Handler())
}
