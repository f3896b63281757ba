package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"geoframe/data"
	"geoframe/server"
	"geoframe/spatial"
)

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load(".env")

	var (
		address       = flag.String("address", envString("GEOFRAME_ADDRESS", ":9090"), "listen address")
		dataFile      = flag.String("data", envString("GEOFRAME_DATA", "features.db"), "feature catalog path, empty to disable")
		defaultLength = flag.Int("default-length", envInt("GEOFRAME_DEFAULT_LENGTH", spatial.DefaultLength), "key length when none is computed")
		limitBottom   = flag.Int("limit-bottom", envInt("GEOFRAME_LIMIT_BOTTOM", spatial.DefaultLimitBottom), "maximum key length")
		originLat     = flag.Float64("origin-lat", 51.5, "projection origin latitude")
		originLon     = flag.Float64("origin-lon", -0.35, "projection origin longitude")
		degPerPixel   = flag.Float64("deg-per-pixel", 0.0001, "projection degrees per pixel")
	)
	flag.Parse()

	index := spatial.NewIndex(spatial.Options{
		DefaultLength: *defaultLength,
		LimitBottom:   *limitBottom,
	})

	proj := spatial.LinearProjection{
		OriginLat:   *originLat,
		OriginLon:   *originLon,
		DegPerPixel: *degPerPixel,
	}

	var store *data.Store
	if *dataFile != "" {
		var err error
		store, err = data.Open(*dataFile)
		if err != nil {
			log.Fatalf("[main] open catalog: %v", err)
		}
		defer store.Close()

		// rebuild the index from the catalog; keys are never persisted
		features, err := store.List()
		if err != nil {
			log.Fatalf("[main] load catalog: %v", err)
		}
		for _, f := range features {
			if _, err := index.Put(f, proj); err != nil {
				log.Printf("[main] skip feature %s: %v", f.ID, err)
			}
		}
		log.Printf("[main] indexed %d features from %s", index.Count(), *dataFile)
	}

	srv := server.New(index, store, proj)
	if err := srv.ListenAndServe(*address); err != nil {
		log.Fatal(err)
	}
}
