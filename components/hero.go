package components

import (
	cfg "github.com/automoto/paradox/config"
	"github.com/yohamta/donburi"
)

type HeroData struct {
	Name       string
	SpawnIndex int
	Respawns   int
	Landings   int
	State      cfg.StateID
}

var Hero = donburi.NewComponentType[HeroData]()
