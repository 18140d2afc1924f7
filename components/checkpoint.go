package components

import (
	"github.com/automoto/paradox/geom"
	"github.com/yohamta/donburi"
)

type CheckpointData struct {
	CheckpointID int
	Activated    bool
	Spawn        geom.Vec2 // feet position to respawn at
}

var Checkpoint = donburi.NewComponentType[CheckpointData]()

// ActiveCheckpointData is stored in LevelData to track the last activated checkpoint
type ActiveCheckpointData struct {
	CheckpointID int
	Spawn        geom.Vec2
}
