package data

import (
	"path/filepath"
	"testing"
	"time"

	"geoframe/spatial"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "features.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveListRoundTrip(t *testing.T) {
	s := openTestStore(t)

	f := &spatial.Feature{
		ID:      "f1",
		Name:    "coffee",
		X:       120,
		Y:       -40,
		Width:   16,
		Height:  16,
		Created: time.Unix(0, 1700000000000000000),
	}
	if err := s.Save(f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d features, want 1", len(got))
	}
	g := got[0]
	if g.ID != f.ID || g.Name != f.Name || g.X != f.X || g.Y != f.Y ||
		g.Width != f.Width || g.Height != f.Height {
		t.Errorf("round trip mismatch: %+v", g)
	}
	if !g.Created.Equal(f.Created) {
		t.Errorf("created = %v, want %v", g.Created, f.Created)
	}
}

func TestSaveUpsertsByID(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(&spatial.Feature{ID: "f1", Name: "old", Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(&spatial.Feature{ID: "f1", Name: "new", Width: 20, Height: 20}); err != nil {
		t.Fatal(err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Count = %d, want 1 after upsert", n)
	}

	got, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Name != "new" || got[0].Width != 20 {
		t.Errorf("upsert did not replace fields: %+v", got[0])
	}
}

func TestListOrderedByCreation(t *testing.T) {
	s := openTestStore(t)

	base := time.Unix(0, 1700000000000000000)
	s.Save(&spatial.Feature{ID: "b", Created: base.Add(2 * time.Second)})
	s.Save(&spatial.Feature{ID: "a", Created: base.Add(1 * time.Second)})
	s.Save(&spatial.Feature{ID: "c", Created: base.Add(3 * time.Second)})

	got, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d features, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("fresh store lists %d features", len(got))
	}
	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("fresh store counts %d features", n)
	}
}
