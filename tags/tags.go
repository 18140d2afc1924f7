package tags

import (
	"strconv"

	"github.com/automoto/paradox/collision"
	"github.com/yohamta/donburi"
)

var (
	Hero           = donburi.NewTag().SetName("Hero")
	Platform       = donburi.NewTag().SetName("Platform")
	MovingPlatform = donburi.NewTag().SetName("MovingPlatform")
	Checkpoint     = donburi.NewTag().SetName("Checkpoint")
)

// Resolv tags for the collision space
const (
	ResolvSolid      = "solid"
	ResolvOneWay     = "oneway"
	ResolvRamp       = "ramp"
	ResolvProbe      = "probe"
	ResolvCheckpoint = "checkpoint"
	ResolvDeadZone   = "deadzone"

	// Slope type tags
	Slope45UpRight = collision.Slope45UpRight
	Slope45UpLeft  = collision.Slope45UpLeft
)

// LayerTag is the resolv tag carried by objects on collision layer i.
func LayerTag(i uint) string {
	return "layer" + strconv.FormatUint(uint64(i), 10)
}

// LayerTags lists the tags for every layer set in mask.
func LayerTags(mask collision.LayerMask) []string {
	var out []string
	for i := uint(0); i < 32; i++ {
		if mask.Has(collision.Layer(i)) {
			out = append(out, LayerTag(i))
		}
	}
	return out
}
