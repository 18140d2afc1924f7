package components

import (
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its body in the resolv world.
type ObjectData struct {
	*resolvworld.Body
}

var Object = donburi.NewComponentType[ObjectData]()
