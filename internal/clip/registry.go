// Package clip holds the fixed-capacity set of clipping plane slots shared by
// the clipping-plane locators and the frame renderer.
package clip

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCapacity is the number of plane slots a registry has unless configured otherwise.
const DefaultCapacity = 6

var (
	// ErrSlotRange is returned for an index outside the registry.
	ErrSlotRange = errors.New("clip: slot index out of range")
	// ErrNotAllocated is returned when activating or editing a free slot.
	ErrNotAllocated = errors.New("clip: slot not allocated")
)

// Plane is the half-space {x : Normal·x >= Offset}.
type Plane struct {
	Normal mgl32.Vec3
	Offset float32
}

// PlaneThrough returns the plane with the given normal passing through point.
func PlaneThrough(point, normal mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Offset: n.Dot(point)}
}

// Equation returns the plane as {a, b, c, d} with a*x + b*y + c*z + d >= 0 on the kept side.
func (p Plane) Equation() [4]float64 {
	return [4]float64{
		float64(p.Normal[0]),
		float64(p.Normal[1]),
		float64(p.Normal[2]),
		-float64(p.Offset),
	}
}

// Distance returns the signed distance of point from the plane.
func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) - p.Offset
}

// Slot is one entry of the registry.
type Slot struct {
	Plane     Plane
	Allocated bool
	Active    bool
}

// Registry is a bounded arena of plane slots. Slots are scanned in index order.
// A slot that is not allocated is never active.
type Registry struct {
	slots     []Slot
	allocated int
}

// New creates a registry with the given number of slots.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{slots: make([]Slot, capacity)}
}

// Capacity returns the number of slots.
func (r *Registry) Capacity() int {
	return len(r.slots)
}

// Allocated returns the number of allocated slots.
func (r *Registry) Allocated() int {
	return r.allocated
}

// Allocate claims the first free slot and returns its index.
// It returns false when every slot is taken.
func (r *Registry) Allocate() (int, bool) {
	for i := range r.slots {
		if !r.slots[i].Allocated {
			r.slots[i] = Slot{Allocated: true}
			r.allocated++
			return i, true
		}
	}
	return -1, false
}

// Free releases a slot and deactivates it. Freeing a free slot is a no-op.
func (r *Registry) Free(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	if r.slots[index].Allocated {
		r.allocated--
	}
	r.slots[index] = Slot{}
	return nil
}

// SetActive switches a slot on or off. Only allocated slots can be activated.
func (r *Registry) SetActive(index int, active bool) error {
	if err := r.check(index); err != nil {
		return err
	}
	s := &r.slots[index]
	if active && !s.Allocated {
		return fmt.Errorf("activate slot %d: %w", index, ErrNotAllocated)
	}
	s.Active = active
	return nil
}

// SetPlane stores the plane of an allocated slot.
func (r *Registry) SetPlane(index int, p Plane) error {
	if err := r.check(index); err != nil {
		return err
	}
	if !r.slots[index].Allocated {
		return fmt.Errorf("set plane of slot %d: %w", index, ErrNotAllocated)
	}
	r.slots[index].Plane = p
	return nil
}

// Slot returns a copy of the slot at index.
func (r *Registry) Slot(index int) (Slot, error) {
	if err := r.check(index); err != nil {
		return Slot{}, err
	}
	return r.slots[index], nil
}

// ActiveCount returns the number of active slots.
func (r *Registry) ActiveCount() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].Active {
			n++
		}
	}
	return n
}

// Active returns the indices of active slots in slot order, stopping after limit entries.
// A negative limit means no limit.
func (r *Registry) Active(limit int) []int {
	var out []int
	for i := range r.slots {
		if limit >= 0 && len(out) >= limit {
			break
		}
		if r.slots[i].Active {
			out = append(out, i)
		}
	}
	return out
}

func (r *Registry) check(index int) error {
	if index < 0 || index >= len(r.slots) {
		return fmt.Errorf("slot %d of %d: %w", index, len(r.slots), ErrSlotRange)
	}
	return nil
}
