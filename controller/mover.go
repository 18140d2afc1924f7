// Package controller moves a box-shaped actor through a world of obstacles by
// casting rays from its edges and clipping the requested displacement.
package controller

import (
	"math"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
	"go.uber.org/zap"
)

// Mover resolves movement for one actor. It is not safe for concurrent use;
// several movers may share a Caster.
type Mover struct {
	caster      collision.Caster
	cfg         Config
	state       CollisionState
	velocity    geom.Vec2
	onCollision func(Contact)
	logger      *zap.Logger
}

type Option func(*Mover)

// WithCollisionHandler registers fn to be called once per ray contact.
func WithCollisionHandler(fn func(Contact)) Option {
	return func(m *Mover) { m.onCollision = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Mover) {
		if l != nil {
			m.logger = l
		}
	}
}

// New validates cfg and returns a mover casting against caster.
func New(caster collision.Caster, cfg Config, opts ...Option) (*Mover, error) {
	if caster == nil {
		return nil, ErrNoCaster
	}
	m := &Mover{caster: caster, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Configure(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure replaces the configuration. An invalid cfg leaves the mover unchanged.
func (m *Mover) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

func (m *Mover) Config() Config { return m.cfg }

// State is the collision state left by the last Move.
func (m *Mover) State() CollisionState { return m.state }

// Velocity is the applied displacement of the last Move divided by its elapsed time.
func (m *Mover) Velocity() geom.Vec2 { return m.velocity }

func (m *Mover) IsGrounded() bool { return m.state.Below }

// Reset forgets the previous contact state and velocity, e.g. after a teleport.
func (m *Mover) Reset() {
	m.state.Reset()
	m.velocity = geom.Zero
}

// rayOrigins are the corners of the actor's box inset by the skin width.
type rayOrigins struct {
	topLeft, topRight, bottomLeft, bottomRight geom.Vec2

	// horizontalSpacing separates rays along the vertical edges,
	// verticalSpacing along the horizontal edges.
	horizontalSpacing float64
	verticalSpacing   float64
}

func (m *Mover) rayOrigins(a Actor) rayOrigins {
	skin := m.cfg.SkinWidth
	half := a.HalfExtents()
	left := a.Position.X - half.X + skin
	right := a.Position.X + half.X - skin
	bottom := a.Position.Y - half.Y + skin
	top := a.Position.Y + half.Y - skin

	return rayOrigins{
		topLeft:           geom.Vec2{X: left, Y: top},
		topRight:          geom.Vec2{X: right, Y: top},
		bottomLeft:        geom.Vec2{X: left, Y: bottom},
		bottomRight:       geom.Vec2{X: right, Y: bottom},
		horizontalSpacing: (top - bottom) / float64(m.cfg.HorizontalRays-1),
		verticalSpacing:   (right - left) / float64(m.cfg.VerticalRays-1),
	}
}

// move carries the per-call scratch state.
type move struct {
	delta    geom.Vec2
	origins  rayOrigins
	contacts []Contact
}

// Move displaces actor by delta, clipped against obstacles, and returns the
// moved actor with the applied delta. elapsed is the time the delta covers;
// a non-positive elapsed yields zero velocity.
func (m *Mover) Move(actor Actor, delta geom.Vec2, elapsed float64) Result {
	wasGrounded := m.state.Below
	m.state.Reset()

	mv := &move{delta: delta, origins: m.rayOrigins(actor)}

	if mv.delta.X != 0 {
		m.moveHorizontally(mv)
	}
	if mv.delta.Y != 0 {
		m.moveVertically(mv)
	}

	actor.Position = actor.Position.Add(mv.delta)
	if elapsed > 0 {
		m.velocity = mv.delta.Div(elapsed)
	} else {
		m.velocity = geom.Zero
	}

	if !wasGrounded && m.state.Below {
		m.state.BecameGroundedThisFrame = true
	}

	return Result{
		Actor:    actor,
		Delta:    mv.delta,
		Velocity: m.velocity,
		State:    m.state,
		Contacts: mv.contacts,
	}
}

func (m *Mover) moveHorizontally(mv *move) {
	skin := m.cfg.SkinWidth
	goingRight := mv.delta.X > 0
	rayDistance := math.Abs(mv.delta.X) + skin
	dir := geom.Left
	start := mv.origins.bottomLeft
	if goingRight {
		dir = geom.Right
		start = mv.origins.bottomRight
	}
	// One-way platforms never block sideways movement.
	mask := m.cfg.PlatformMask.Without(m.cfg.OneWayPlatformMask)

	for i := 0; i < m.cfg.HorizontalRays; i++ {
		ray := geom.Vec2{X: start.X, Y: start.Y + float64(i)*mv.origins.horizontalSpacing}
		hit, ok := m.caster.Raycast(ray, dir, rayDistance, mask)
		if !ok {
			continue
		}

		// Only the bottom ray can find a slope.
		if i == 0 && m.tryMoveSlope(mv, hit.Normal, goingRight) {
			m.collided(mv, hit, Horizontal, dir, true)
			break
		}

		mv.delta.X = hit.Point.X - ray.X
		rayDistance = math.Abs(mv.delta.X)

		// The skin was included in the ray origin and length.
		if goingRight {
			mv.delta.X -= skin
			m.state.Right = true
		} else {
			mv.delta.X += skin
			m.state.Left = true
		}
		m.collided(mv, hit, Horizontal, dir, false)

		if rayDistance < skin+directContactEpsilon {
			break
		}
	}
}

func (m *Mover) moveVertically(mv *move) {
	skin := m.cfg.SkinWidth
	goingUp := mv.delta.Y > 0
	rayDistance := math.Abs(mv.delta.Y) + skin
	dir := geom.Down
	start := mv.origins.bottomLeft
	mask := m.cfg.PlatformMask
	if goingUp {
		dir = geom.Up
		start = mv.origins.topLeft
		// Jump up through one-way platforms.
		mask = mask.Without(m.cfg.OneWayPlatformMask)
	}
	if m.cfg.ShiftVerticalRays {
		start.X += mv.delta.X
	}

	for i := 0; i < m.cfg.VerticalRays; i++ {
		ray := geom.Vec2{X: start.X + float64(i)*mv.origins.verticalSpacing, Y: start.Y}
		hit, ok := m.caster.Raycast(ray, dir, rayDistance, mask)
		if !ok {
			continue
		}

		mv.delta.Y = hit.Point.Y - ray.Y
		rayDistance = math.Abs(mv.delta.Y)

		if goingUp {
			mv.delta.Y -= skin
			m.state.Above = true
		} else {
			mv.delta.Y += skin
			m.state.Below = true
		}
		m.collided(mv, hit, Vertical, dir, false)

		if rayDistance < skin+directContactEpsilon {
			return
		}
	}
}

func (m *Mover) collided(mv *move, hit collision.Hit, axis Axis, dir geom.Vec2, slope bool) {
	c := Contact{Hit: hit, Axis: axis, Direction: dir, Slope: slope}
	mv.contacts = append(mv.contacts, c)

	if ce := m.logger.Check(zap.DebugLevel, "ray hit"); ce != nil {
		ce.Write(
			zap.Stringer("axis", axis),
			zap.Float64("x", hit.Point.X),
			zap.Float64("y", hit.Point.Y),
			zap.Float64("distance", hit.Distance),
			zap.Bool("slope", slope),
		)
	}

	if m.onCollision != nil {
		m.onCollision(c)
	}
}
