package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/paradox/leveldata"
)

//go:embed all:levels
var assetFS embed.FS

// LevelsDir is the directory inside Levels holding the .tmx maps.
const LevelsDir = "levels"

// Levels is the embedded level tree.
var Levels fs.FS = assetFS

type LevelLoader struct {
	unit float64
}

// NewLevelLoader reads levels at unit pixels per world unit; zero uses each
// map's tile width.
func NewLevelLoader(unit float64) *LevelLoader {
	return &LevelLoader{unit: unit}
}

// LoadLevels parses every embedded level, returning them by name and the
// sorted list of names.
func (l *LevelLoader) LoadLevels() (map[string]*leveldata.Level, []string, error) {
	return leveldata.LoadAll(assetFS, LevelsDir, l.unit)
}

func (l *LevelLoader) MustLoadLevel(name string) *leveldata.Level {
	level, err := leveldata.Load(assetFS, fmt.Sprintf("%s/%s.tmx", LevelsDir, name), l.unit)
	if err != nil {
		panic(err)
	}
	return level
}
