package clip

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariant(t *testing.T, r *Registry) {
	t.Helper()
	allocated := 0
	for i := 0; i < r.Capacity(); i++ {
		s, err := r.Slot(i)
		require.NoError(t, err)
		if s.Active {
			assert.True(t, s.Allocated, "slot %d active but not allocated", i)
		}
		if s.Allocated {
			allocated++
		}
	}
	assert.Equal(t, allocated, r.Allocated())
	assert.LessOrEqual(t, r.Allocated(), r.Capacity())
}

func TestNewCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-3).Capacity())
	assert.Equal(t, 8, New(8).Capacity())
}

func TestAllocateFirstFree(t *testing.T) {
	r := New(3)

	for want := 0; want < 3; want++ {
		got, ok := r.Allocate()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := r.Allocate()
	assert.False(t, ok, "full registry must refuse allocation")

	require.NoError(t, r.Free(1))
	got, ok := r.Allocate()
	require.True(t, ok)
	assert.Equal(t, 1, got, "freed slot is reused first")
}

func TestFreeIdempotent(t *testing.T) {
	r := New(2)
	i, _ := r.Allocate()
	require.NoError(t, r.SetActive(i, true))

	require.NoError(t, r.Free(i))
	require.NoError(t, r.Free(i))

	s, _ := r.Slot(i)
	assert.False(t, s.Allocated)
	assert.False(t, s.Active)
	assert.Equal(t, 0, r.Allocated())
}

func TestSetActiveRequiresAllocation(t *testing.T) {
	r := New(2)

	err := r.SetActive(0, true)
	assert.True(t, errors.Is(err, ErrNotAllocated))
	s, _ := r.Slot(0)
	assert.False(t, s.Active)

	// Deactivating a free slot is harmless.
	assert.NoError(t, r.SetActive(0, false))

	assert.ErrorIs(t, r.SetActive(5, true), ErrSlotRange)
	assert.ErrorIs(t, r.Free(-1), ErrSlotRange)
	assert.ErrorIs(t, r.SetPlane(0, Plane{}), ErrNotAllocated)
}

func TestActiveOrderAndLimit(t *testing.T) {
	r := New(6)
	for i := 0; i < 6; i++ {
		r.Allocate()
	}
	for _, i := range []int{0, 2, 3, 5} {
		require.NoError(t, r.SetActive(i, true))
	}

	assert.Equal(t, []int{0, 2, 3, 5}, r.Active(-1))
	assert.Equal(t, []int{0, 2, 3, 5}, r.Active(4))
	assert.Equal(t, []int{0, 2}, r.Active(2))
	assert.Empty(t, r.Active(0))
	assert.Equal(t, 4, r.ActiveCount())
}

func TestRandomAllocateFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, capacity := range []int{1, 4, 6, 16} {
		r := New(capacity)
		for step := 0; step < 2000; step++ {
			switch rng.Intn(4) {
			case 0, 1:
				r.Allocate()
			case 2:
				_ = r.Free(rng.Intn(capacity))
			case 3:
				_ = r.SetActive(rng.Intn(capacity), rng.Intn(2) == 0)
			}
			checkInvariant(t, r)
		}
	}
}

func TestPlaneThrough(t *testing.T) {
	p := PlaneThrough(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, -4})

	want := mgl32.Vec3{0, 0, -1}
	assert.InDeltaSlice(t, want[:], p.Normal[:], 1e-6)
	assert.InDelta(t, -2.0, p.Offset, 1e-6)
	assert.InDelta(t, 0.0, p.Distance(mgl32.Vec3{5, 5, 2}), 1e-6)
	assert.Greater(t, p.Distance(mgl32.Vec3{0, 0, 0}), float32(0))

	eq := p.Equation()
	assert.Equal(t, [4]float64{0, 0, -1, 2}, eq)
}
