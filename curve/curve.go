// Package curve maps a scalar input onto an output through keyframes, easing
// between neighbouring keys with the gween easing functions.
package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

var (
	ErrNoKeys      = errors.New("curve: no keys")
	ErrUnknownEase = errors.New("curve: unknown ease")
	ErrUnordered   = errors.New("curve: keys not strictly increasing")
)

// Key is one keyframe. Ease shapes the segment that starts at this key.
type Key struct {
	At    float64 `yaml:"at"`
	Value float64 `yaml:"value"`
	Ease  string  `yaml:"ease,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inCirc":     ease.InCirc,
	"outCirc":    ease.OutCirc,
}

// Curve is an immutable piecewise curve. The zero value has no keys and
// evaluates to 0.
type Curve struct {
	keys []Key
	fns  []ease.TweenFunc
}

// New validates keys and builds a curve. Keys must be strictly increasing in At.
func New(keys ...Key) (*Curve, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	c := &Curve{
		keys: append([]Key(nil), keys...),
		fns:  make([]ease.TweenFunc, len(keys)),
	}
	for i, k := range keys {
		if i > 0 && k.At <= keys[i-1].At {
			return nil, fmt.Errorf("key %d at %v: %w", i, k.At, ErrUnordered)
		}
		fn, err := Ease(k.Ease)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if k.Ease != "" && k.Ease != "linear" {
			c.fns[i] = fn
		}
	}
	return c, nil
}

// Ease looks up an easing function by name. The empty name is linear.
func Ease(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEase)
	}
	return fn, nil
}

// MustNew is New for package-level defaults.
func MustNew(keys ...Key) *Curve {
	c, err := New(keys...)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear is the straight line through (x0, y0) and (x1, y1).
func Linear(x0, y0, x1, y1 float64) *Curve {
	return MustNew(Key{At: x0, Value: y0}, Key{At: x1, Value: y1})
}

// Constant always evaluates to v.
func Constant(v float64) *Curve {
	return MustNew(Key{At: 0, Value: v})
}

// Keys returns a copy of the keyframes.
func (c *Curve) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Monotonic reports whether the key values never change direction. Every
// supported ease stays between its end values, so the keys decide.
func (c *Curve) Monotonic() bool {
	rising, falling := false, false
	for i := 1; i < len(c.keys); i++ {
		switch d := c.keys[i].Value - c.keys[i-1].Value; {
		case d > 0:
			rising = true
		case d < 0:
			falling = true
		}
	}
	return !(rising && falling)
}

// Evaluate returns the curve value at x, clamping outside the key range.
// Linear segments are exact in float64. Eased segments take their progress
// fraction from gween, which works in float32, so they carry about seven
// significant digits.
func (c *Curve) Evaluate(x float64) float64 {
	if len(c.keys) == 0 {
		return 0
	}
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if x <= first.At {
		return first.Value
	}
	if x >= last.At {
		return last.Value
	}

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].At > x }) - 1
	k0, k1 := c.keys[i], c.keys[i+1]
	t := (x - k0.At) / (k1.At - k0.At)
	if fn := c.fns[i]; fn != nil {
		t = float64(fn(float32(t), 0, 1, 1))
	}
	return k0.Value + (k1.Value-k0.Value)*t
}
