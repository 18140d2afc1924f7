package components

import "github.com/yohamta/donburi"

// InputData is one tick of movement intent. Horizontal is in [-1, 1].
type InputData struct {
	Horizontal float64
	Jump       bool
}

var Input = donburi.NewComponentType[InputData]()
