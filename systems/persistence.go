package systems

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/geom"
	"github.com/quasilyte/gdata"
)

// Store persists opaque blobs by key. *gdata.Manager satisfies it.
type Store interface {
	SaveItem(key string, data []byte) error
	LoadItem(key string) ([]byte, error)
}

// OpenStore opens the gdata store for appName.
func OpenStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", appName, err)
	}
	return m, nil
}

// SavedHero is the restorable state of one hero.
type SavedHero struct {
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Respawns int     `json:"respawns"`
}

// SavedGameProgress is what a checkpoint writes.
type SavedGameProgress struct {
	Level        string      `json:"level"`
	CheckpointID int         `json:"checkpointId"`
	SpawnX       float64     `json:"spawnX"`
	SpawnY       float64     `json:"spawnY"`
	Heroes       []SavedHero `json:"heroes,omitempty"`
}

// Checkpoint returns the checkpoint the progress was saved at.
func (p *SavedGameProgress) Checkpoint() *components.ActiveCheckpointData {
	return &components.ActiveCheckpointData{
		CheckpointID: p.CheckpointID,
		Spawn:        geom.V(p.SpawnX, p.SpawnY),
	}
}

func progressKey(level string) string {
	return "progress_" + level
}

// LoadGameProgress returns nil without error when nothing was saved for level.
func LoadGameProgress(store Store, level string) (*SavedGameProgress, error) {
	if store == nil {
		return nil, nil
	}
	data, err := store.LoadItem(progressKey(level))
	if err != nil {
		return nil, fmt.Errorf("load progress %s: %w", level, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var progress SavedGameProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("parse progress %s: %w", level, err)
	}
	return &progress, nil
}

func SaveGameProgress(store Store, progress *SavedGameProgress) error {
	if store == nil || progress == nil {
		return nil
	}
	if progress.Level == "" {
		return errors.New("save progress: level name is empty")
	}
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("serialize progress: %w", err)
	}
	if err := store.SaveItem(progressKey(progress.Level), data); err != nil {
		return fmt.Errorf("save progress %s: %w", progress.Level, err)
	}
	return nil
}
