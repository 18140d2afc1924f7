package curve

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	c := MustNew(
		Key{At: 0, Value: 1},
		Key{At: 30, Value: 0.5, Ease: "inOutSine"},
		Key{At: 90, Value: 0},
	)

	cases := []struct {
		x, want float64
	}{
		{-10, 1},
		{0, 1},
		{15, 0.75},
		{30, 0.5},
		{60, 0.25},
		{90, 0},
		{120, 0},
	}
	for _, tc := range cases {
		if got := c.Evaluate(tc.x); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("Evaluate(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	c := MustNew(Key{At: 0, Value: 1, Ease: "inOutSine"}, Key{At: 90, Value: 0})
	prev := c.Evaluate(0)
	for x := 1.0; x <= 90; x++ {
		v := c.Evaluate(x)
		if v > prev {
			t.Fatalf("curve rose at %v: %v > %v", x, v, prev)
		}
		prev = v
	}
}

func TestNewRejects(t *testing.T) {
	cases := []struct {
		name string
		keys []Key
		want error
	}{
		{"empty", nil, ErrNoKeys},
		{"unordered", []Key{{At: 10}, {At: 5}}, ErrUnordered},
		{"duplicate", []Key{{At: 10}, {At: 10}}, ErrUnordered},
		{"ease", []Key{{At: 0, Ease: "wobble"}}, ErrUnknownEase},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.keys...); !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestConstant(t *testing.T) {
	c := Constant(0.3)
	for _, x := range []float64{-5, 0, 45, 1000} {
		if got := c.Evaluate(x); got != 0.3 {
			t.Fatalf("Evaluate(%v) = %v", x, got)
		}
	}
}

func TestEase(t *testing.T) {
	fn, err := Ease("")
	if err != nil {
		t.Fatalf("empty name: %v", err)
	}
	if got := fn(1, 0, 10, 2); got != 5 {
		t.Fatalf("linear midpoint %v", got)
	}
	if _, err := Ease("bounce"); !errors.Is(err, ErrUnknownEase) {
		t.Fatalf("got %v", err)
	}
}

func TestLinearSegmentsAreExact(t *testing.T) {
	c := Linear(0, 0, 90, 1)
	for _, x := range []float64{1e-7, 30, 45.123456789} {
		if got, want := c.Evaluate(x), x/90; math.Abs(got-want) > 1e-15 {
			t.Fatalf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestZeroCurve(t *testing.T) {
	var c Curve
	if got := c.Evaluate(12); got != 0 {
		t.Fatalf("zero curve evaluated to %v", got)
	}
	if len(c.Keys()) != 0 || !c.Monotonic() {
		t.Fatalf("zero curve keys %v", c.Keys())
	}
}

func TestMonotonic(t *testing.T) {
	cases := []struct {
		name string
		c    *Curve
		want bool
	}{
		{"falling", MustNew(Key{At: 0, Value: 1, Ease: "inOutSine"}, Key{At: 90, Value: 0}), true},
		{"rising with plateau", MustNew(Key{At: 0, Value: 0}, Key{At: 10, Value: 0}, Key{At: 20, Value: 2}), true},
		{"constant", Constant(0.5), true},
		{"dip", MustNew(Key{At: 0, Value: 1}, Key{At: 30, Value: 0.2}, Key{At: 60, Value: 0.8}), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Monotonic(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
