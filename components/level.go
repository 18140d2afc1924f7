package components

import (
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/automoto/paradox/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Level *leveldata.Level
	// Caster answers every ray query: static geometry plus moving platforms.
	Caster collision.Caster
	// World holds moving platforms and checkpoint triggers.
	World            *resolvworld.World
	ActiveCheckpoint *ActiveCheckpointData
	Tick             uint64
}

var Level = donburi.NewComponentType[LevelData]()
