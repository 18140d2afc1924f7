package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
	"github.com/lafriks/go-tiled"
)

// Tile layers and object groups read from a map.
const (
	LayerSolid     = "solid"
	LayerOneWay    = "oneway"
	GroupSpawn     = "PlayerSpawn"
	GroupPlatforms = "MovingPlatforms"
	GroupCheckpts  = "Checkpoint"
	GroupDeadZones = "DeadZones"
)

const defaultPlatformDuration = 2

// Load parses a TMX file from fsys. unit is the number of pixels per world
// unit; zero uses the map's tile width.
func Load(fsys fs.FS, tmxPath string, unit float64) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("leveldata: load TMX %s: %w", tmxPath, err)
	}
	if unit <= 0 {
		unit = float64(levelMap.TileWidth)
	}
	if unit <= 0 {
		return nil, fmt.Errorf("leveldata: %s has no tile width", tmxPath)
	}

	c := converter{
		unit:    unit,
		heightP: float64(levelMap.Height * levelMap.TileHeight),
	}
	level := &Level{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Bounds: geom.Rect(0, 0, float64(levelMap.Width*levelMap.TileWidth)/unit, c.heightP/unit),
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != LayerSolid && layer.Name != LayerOneWay {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				var slopeType string
				oneWay := layer.Name == LayerOneWay
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					slopeType = tilesetTile.Properties.GetString("slope")
					oneWay = oneWay || tilesetTile.Properties.GetBool("oneway")
				}
				switch slopeType {
				case collision.SlopeNone, collision.Slope45UpRight, collision.Slope45UpLeft:
				default:
					return nil, fmt.Errorf("leveldata: %s tile (%d, %d): unknown slope %q", tmxPath, x, y, slopeType)
				}

				level.Tiles = append(level.Tiles, Tile{
					Box:    c.rect(float64(x)*tileW, float64(y)*tileH, tileW, tileH),
					Slope:  slopeType,
					OneWay: oneWay,
				})
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupSpawn:
			for _, o := range og.Objects {
				level.Spawns = append(level.Spawns, Spawn{
					Position: c.point(o.X, o.Y),
					Index:    o.Properties.GetInt("spawnIndex"),
				})
			}
		case GroupPlatforms:
			for _, o := range og.Objects {
				duration := o.Properties.GetFloat("duration")
				if duration <= 0 {
					duration = defaultPlatformDuration
				}
				level.Platforms = append(level.Platforms, MovingPlatform{
					Box: c.rect(o.X, o.Y, o.Width, o.Height),
					// Offsets are authored in pixels, y-down.
					Offset:   geom.V(o.Properties.GetFloat("dx")/unit, -o.Properties.GetFloat("dy")/unit),
					Duration: duration,
					Ease:     o.Properties.GetString("ease"),
					OneWay:   o.Properties.GetBool("oneway"),
				})
			}
		case GroupCheckpts:
			for _, o := range og.Objects {
				level.Checkpoints = append(level.Checkpoints, Checkpoint{
					Box: c.rect(o.X, o.Y, o.Width, o.Height),
					ID:  o.Properties.GetInt("checkpointID"),
				})
			}
		case GroupDeadZones:
			for _, o := range og.Objects {
				level.DeadZones = append(level.DeadZones, c.rect(o.X, o.Y, o.Width, o.Height))
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].Position.X < level.Spawns[j].Position.X
	})

	return level, nil
}

// LoadAll discovers all .tmx files in levelsDir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, levelsDir string, unit float64) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("leveldata: glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("leveldata: no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path, unit)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

// converter maps TMX pixels (y-down, origin top-left) to world units (y-up,
// origin bottom-left).
type converter struct {
	unit    float64
	heightP float64
}

func (c converter) point(x, y float64) geom.Vec2 {
	return geom.V(x/c.unit, (c.heightP-y)/c.unit)
}

func (c converter) rect(x, y, w, h float64) geom.AABB {
	return geom.Rect(x/c.unit, (c.heightP-y-h)/c.unit, w/c.unit, h/c.unit)
}
