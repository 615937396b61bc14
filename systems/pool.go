package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fallingball/components"
)

// Pool owns every ball slot ever allocated. Slots are ark entities that are
// never removed; a dormant slot is an entity whose State.Active is false.
// The slots slice records allocation order, which drives reuse.
type Pool struct {
	world *ecs.World

	ballMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Tint,
		components.State,
	]
	motionFilter *ecs.Filter3[
		components.Position,
		components.Velocity,
		components.State,
	]
	stateMap *ecs.Map[components.State]

	slots  []ecs.Entity
	active int
}

// NewPool creates an empty pool. capacity preallocates slot bookkeeping
// and does not create any balls.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	world := ecs.NewWorld()

	return &Pool{
		world: world,
		ballMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Tint,
			components.State,
		](world),
		motionFilter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.State,
		](world),
		stateMap: ecs.NewMap[components.State](world),
		slots:    make([]ecs.Entity, 0, capacity),
	}
}

// Tick advances every active ball by one step and then deactivates every
// ball whose post-advance position lies outside bounds.
// Returns how many balls went from active to inactive.
func (p *Pool) Tick(gravity float32, bounds Bounds) int {
	culled := 0

	query := p.motionFilter.Query()
	for query.Next() {
		pos, vel, state := query.Get()

		if state.Active {
			Advance(pos, vel, gravity)
		}

		// Dormant slots are checked too; deactivation is idempotent.
		if bounds.Outside(*pos) {
			if state.Active {
				culled++
			}
			Deactivate(state)
		}
	}

	p.active -= culled
	return culled
}

// SpawnOrReuse places one ball. The first dormant slot in allocation order
// is reset in place; if there is none a new slot is appended.
// Returns the slot index and whether an existing slot was reused.
func (p *Pool) SpawnOrReuse(params SpawnParams) (int, bool) {
	for i, e := range p.slots {
		if p.stateMap.Get(e).Active {
			continue
		}
		pos, vel, body, tint, state := p.ballMapper.Get(e)
		Reset(pos, vel, body, tint, state, params)
		p.active++
		return i, true
	}

	pos := params.Position
	vel := params.Velocity
	body := components.Body{Radius: params.Radius}
	tint := params.Color
	state := components.State{Active: true}

	entity := p.ballMapper.NewEntity(&pos, &vel, &body, &tint, &state)
	p.slots = append(p.slots, entity)
	p.active++

	return len(p.slots) - 1, false
}

// ForEachActive calls visit for each active ball in slot order.
// visit must not mutate the pool.
func (p *Pool) ForEachActive(visit func(Particle)) {
	for i, e := range p.slots {
		if !p.stateMap.Get(e).Active {
			continue
		}
		visit(p.snapshot(i, e))
	}
}

// At returns a snapshot of slot i. It panics if i is out of range.
func (p *Pool) At(i int) Particle {
	return p.snapshot(i, p.slots[i])
}

// Clear deactivates every slot. The pool keeps its size.
func (p *Pool) Clear() {
	for _, e := range p.slots {
		Deactivate(p.stateMap.Get(e))
	}
	p.active = 0
}

// Len returns the number of allocated slots.
func (p *Pool) Len() int {
	return len(p.slots)
}

// ActiveCount returns the number of active balls.
func (p *Pool) ActiveCount() int {
	return p.active
}

func (p *Pool) snapshot(i int, e ecs.Entity) Particle {
	pos, vel, body, tint, state := p.ballMapper.Get(e)
	return Particle{
		Index:    i,
		Radius:   body.Radius,
		Position: *pos,
		Velocity: *vel,
		Color:    *tint,
		Active:   state.Active,
	}
}
