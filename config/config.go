package config

import (
	"fmt"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/controller"
	"github.com/automoto/paradox/curve"
	"github.com/yohamta/donburi/ecs"
)

// Default is the ECS layer every entity is created on.
const Default ecs.LayerID = 0

// MoverConfig is the YAML form of controller.Config. Masks are written as
// layer indices.
type MoverConfig struct {
	SkinWidth         float64     `yaml:"skin_width"`
	SlopeLimit        float64     `yaml:"slope_limit"` // degrees
	SlopeSpeed        []curve.Key `yaml:"slope_speed"`
	HorizontalRays    int         `yaml:"horizontal_rays"`
	VerticalRays      int         `yaml:"vertical_rays"`
	PlatformLayers    []uint      `yaml:"platform_layers"`
	OneWayLayers      []uint      `yaml:"one_way_layers"`
	JumpThreshold     float64     `yaml:"jump_threshold"`
	ShiftVerticalRays bool        `yaml:"shift_vertical_rays"`
	SteepSlopeAsWall  bool        `yaml:"steep_slope_as_wall"`
}

// HeroConfig tunes the hero motor. Units are world units and seconds.
type HeroConfig struct {
	Gravity           float64 `yaml:"gravity"`
	RunSpeed          float64 `yaml:"run_speed"`
	MaxJumpHeight     float64 `yaml:"max_jump_height"`
	TurnSpeedScalar   float64 `yaml:"turn_speed_scalar"`
	TimeToRunOnGround float64 `yaml:"time_to_run_on_ground"` // seconds to reach run speed
	TimeToRunInAir    float64 `yaml:"time_to_run_in_air"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
}

// SimConfig contains simulation loop settings
type SimConfig struct {
	TickRate  int     `yaml:"tick_rate"` // ticks per second
	CellSize  int     `yaml:"cell_size"` // broad phase cell, world units
	TileSize  float64 `yaml:"tile_size"` // pixels per world unit; 0 uses the map tile width
	Backend   string  `yaml:"backend"`   // "resolv" or "chipmunk"
	AppName   string  `yaml:"app_name"`  // checkpoint storage namespace
	MaxActors int     `yaml:"max_actors"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty logs to stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// File is the layout of a YAML configuration file. Missing sections keep
// their defaults.
type File struct {
	Mover MoverConfig `yaml:"mover"`
	Hero  HeroConfig  `yaml:"hero"`
	Sim   SimConfig   `yaml:"sim"`
	Log   LogConfig   `yaml:"log"`
}

const (
	BackendResolv   = "resolv"
	BackendChipmunk = "chipmunk"
)

// Global configuration instances
var Mover MoverConfig
var Hero HeroConfig
var Sim SimConfig
var Log LogConfig

func init() {
	Mover = MoverConfig{
		SkinWidth:  0.02,
		SlopeLimit: 30,
		SlopeSpeed: []curve.Key{
			{At: 0, Value: 1, Ease: "inOutSine"},
			{At: 90, Value: 0},
		},
		HorizontalRays: 8,
		VerticalRays:   4,
		PlatformLayers: []uint{0, 1},
		OneWayLayers:   []uint{1},
		JumpThreshold:  controller.DefaultJumpThreshold,
	}

	Hero = HeroConfig{
		Gravity:           -50,
		RunSpeed:          25,
		MaxJumpHeight:     8,
		TurnSpeedScalar:   2,
		TimeToRunOnGround: 1,
		TimeToRunInAir:    5,
		Width:             1,
		Height:            2,
	}

	Sim = SimConfig{
		TickRate:  60,
		CellSize:  2,
		Backend:   BackendResolv,
		AppName:   "paradox",
		MaxActors: 64,
	}

	Log = LogConfig{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Defaults returns a copy of the package-level configuration.
func Defaults() File {
	f := File{Mover: Mover, Hero: Hero, Sim: Sim, Log: Log}
	f.Mover.SlopeSpeed = append([]curve.Key(nil), Mover.SlopeSpeed...)
	f.Mover.PlatformLayers = append([]uint(nil), Mover.PlatformLayers...)
	f.Mover.OneWayLayers = append([]uint(nil), Mover.OneWayLayers...)
	return f
}

// Mask folds layer indices into a layer mask.
func Mask(layers []uint) (collision.LayerMask, error) {
	var m collision.LayerMask
	for _, l := range layers {
		if l > 31 {
			return 0, fmt.Errorf("config: layer %d out of range [0, 31]", l)
		}
		m |= collision.Layer(l)
	}
	return m, nil
}

// Controller builds and validates the mover configuration.
func (m MoverConfig) Controller() (controller.Config, error) {
	speed, err := curve.New(m.SlopeSpeed...)
	if err != nil {
		return controller.Config{}, fmt.Errorf("config: slope speed: %w", err)
	}
	platform, err := Mask(m.PlatformLayers)
	if err != nil {
		return controller.Config{}, err
	}
	oneWay, err := Mask(m.OneWayLayers)
	if err != nil {
		return controller.Config{}, err
	}

	c := controller.Config{
		SkinWidth:          m.SkinWidth,
		SlopeLimit:         m.SlopeLimit,
		SlopeSpeed:         speed,
		HorizontalRays:     m.HorizontalRays,
		VerticalRays:       m.VerticalRays,
		PlatformMask:       platform,
		OneWayPlatformMask: oneWay,
		JumpThreshold:      m.JumpThreshold,
		ShiftVerticalRays:  m.ShiftVerticalRays,
		SteepSlopeAsWall:   m.SteepSlopeAsWall,
	}
	if err := c.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("config: mover: %w", err)
	}
	return c, nil
}
