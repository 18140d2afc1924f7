package controller

import (
	"errors"
	"fmt"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/curve"
	"go.uber.org/multierr"
)

var (
	ErrRayCount   = errors.New("controller: ray count must be at least 2")
	ErrMaskSubset = errors.New("controller: one-way platform mask must be a subset of the platform mask")
	ErrSkinWidth  = errors.New("controller: invalid skin width")
	ErrSlopeLimit = errors.New("controller: slope limit must be within [0, 90] degrees")
	ErrNoCurve    = errors.New("controller: slope speed curve is required")
	ErrCurveShape = errors.New("controller: slope speed curve is not monotonic")
	ErrNoCaster   = errors.New("controller: caster is required")
)

const (
	// directContactEpsilon is how close to the skin a hit must be to count as
	// touching; further rays on that axis cannot clip any tighter.
	directContactEpsilon = 0.001

	// DefaultJumpThreshold is the vertical delta at or above which a slope
	// contact is treated as a jump and left unadjusted.
	DefaultJumpThreshold = 0.07
)

// Config is the persistent mover configuration.
type Config struct {
	// SkinWidth insets the ray origins so rays do not start on the surface the
	// actor rests on.
	SkinWidth float64
	// SlopeLimit is the steepest walkable slope, in degrees from up.
	SlopeLimit float64
	// SlopeSpeed maps slope angle in degrees to a horizontal speed multiplier.
	SlopeSpeed *curve.Curve

	HorizontalRays int
	VerticalRays   int

	// PlatformMask is everything solid. OneWayPlatformMask is the subset that
	// can be landed on from above but passed through from below or the sides.
	PlatformMask       collision.LayerMask
	OneWayPlatformMask collision.LayerMask

	JumpThreshold float64

	// ShiftVerticalRays offsets the vertical ray origins by the horizontal
	// delta already resolved this move. Off by default: both axes cast from
	// the pre-move origins.
	ShiftVerticalRays bool
	// SteepSlopeAsWall resolves slopes at or above SlopeLimit as ordinary
	// walls (clip and set Left/Right). Off by default: the horizontal delta is
	// zeroed and no flag is set.
	SteepSlopeAsWall bool
}

// DefaultConfig mirrors the tuning the character was built with.
func DefaultConfig() Config {
	return Config{
		SkinWidth:  0.02,
		SlopeLimit: 30,
		SlopeSpeed: curve.MustNew(
			curve.Key{At: 0, Value: 1, Ease: "inOutSine"},
			curve.Key{At: 90, Value: 0},
		),
		HorizontalRays:     8,
		VerticalRays:       4,
		PlatformMask:       collision.Layer(0) | collision.Layer(1),
		OneWayPlatformMask: collision.Layer(1),
		JumpThreshold:      DefaultJumpThreshold,
	}
}

// Validate reports every configuration violation at once.
func (c Config) Validate() error {
	var err error
	if c.HorizontalRays < 2 {
		err = multierr.Append(err, fmt.Errorf("horizontal rays %d: %w", c.HorizontalRays, ErrRayCount))
	}
	if c.VerticalRays < 2 {
		err = multierr.Append(err, fmt.Errorf("vertical rays %d: %w", c.VerticalRays, ErrRayCount))
	}
	if !c.PlatformMask.Contains(c.OneWayPlatformMask) {
		err = multierr.Append(err, fmt.Errorf("platform %#x, one-way %#x: %w",
			uint32(c.PlatformMask), uint32(c.OneWayPlatformMask), ErrMaskSubset))
	}
	if c.SkinWidth < 0 {
		err = multierr.Append(err, fmt.Errorf("skin width %v is negative: %w", c.SkinWidth, ErrSkinWidth))
	}
	if c.SlopeLimit < 0 || c.SlopeLimit > 90 {
		err = multierr.Append(err, fmt.Errorf("slope limit %v: %w", c.SlopeLimit, ErrSlopeLimit))
	}
	switch {
	case c.SlopeSpeed == nil || len(c.SlopeSpeed.Keys()) == 0:
		err = multierr.Append(err, ErrNoCurve)
	case !c.SlopeSpeed.Monotonic():
		err = multierr.Append(err, ErrCurveShape)
	}
	return err
}

// Fits reports whether the skin width leaves room inside the actor's box.
func (c Config) Fits(a Actor) error {
	half := a.HalfExtents()
	smaller := half.X
	if half.Y < smaller {
		smaller = half.Y
	}
	if c.SkinWidth >= smaller {
		return fmt.Errorf("skin width %v does not fit half extent %v: %w", c.SkinWidth, smaller, ErrSkinWidth)
	}
	return nil
}
