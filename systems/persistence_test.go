package systems

import (
	"errors"
	"testing"
)

type memStore map[string][]byte

func (m memStore) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memStore) LoadItem(key string) ([]byte, error) {
	return m[key], nil
}

type brokenStore struct{}

var errDisk = errors.New("disk full")

func (brokenStore) SaveItem(string, []byte) error     { return errDisk }
func (brokenStore) LoadItem(string) ([]byte, error) { return nil, errDisk }

func TestGameProgressRoundTrip(t *testing.T) {
	store := memStore{}
	saved := &SavedGameProgress{
		Level:        "demo",
		CheckpointID: 3,
		SpawnX:       4.5,
		SpawnY:       2,
		Heroes:       []SavedHero{{Name: "a", X: 5, Y: 3, Respawns: 2}},
	}
	if err := SaveGameProgress(store, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store["progress_demo"]; !ok {
		t.Fatalf("keys %v", store)
	}

	got, err := LoadGameProgress(store, "demo")
	if err != nil || got == nil {
		t.Fatalf("load: %v", err)
	}
	if got.CheckpointID != 3 || len(got.Heroes) != 1 || got.Heroes[0] != saved.Heroes[0] {
		t.Fatalf("got %+v", got)
	}
	if cp := got.Checkpoint(); cp.CheckpointID != 3 || cp.Spawn.X != 4.5 || cp.Spawn.Y != 2 {
		t.Fatalf("checkpoint %+v", cp)
	}
}

func TestLoadGameProgressEmpty(t *testing.T) {
	got, err := LoadGameProgress(memStore{}, "demo")
	if got != nil || err != nil {
		t.Fatalf("got %+v, %v", got, err)
	}
	got, err = LoadGameProgress(nil, "demo")
	if got != nil || err != nil {
		t.Fatalf("nil store: %+v, %v", got, err)
	}
}

func TestGameProgressErrors(t *testing.T) {
	if err := SaveGameProgress(memStore{}, &SavedGameProgress{}); err == nil {
		t.Fatalf("saved without a level name")
	}
	if err := SaveGameProgress(brokenStore{}, &SavedGameProgress{Level: "demo"}); !errors.Is(err, errDisk) {
		t.Fatalf("save: %v", err)
	}
	if _, err := LoadGameProgress(brokenStore{}, "demo"); !errors.Is(err, errDisk) {
		t.Fatalf("load: %v", err)
	}
	if _, err := LoadGameProgress(memStore{"progress_demo": []byte("{")}, "demo"); err == nil {
		t.Fatalf("parsed a broken save")
	}
}
