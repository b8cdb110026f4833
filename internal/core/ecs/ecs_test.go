package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPool_StaleHandleAfterDestroy(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Alive(a))
	assert.False(t, a.IsZero())

	assert.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "second destroy of a stale handle must be a no-op")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "slot is recycled")
	assert.NotEqual(t, a, b)
	assert.False(t, p.Alive(a), "old handle stays invalid after reuse")
	assert.True(t, p.Alive(b))
	assert.Equal(t, 1, p.Len())
}

func TestEntityPool_ZeroIsNeverAlive(t *testing.T) {
	p := NewEntityPool()
	p.Create()
	assert.False(t, p.Alive(None))
}

func TestStore_InsertionOrderSurvivesRemoval(t *testing.T) {
	s := NewStore[int]()
	vals := []int{10, 20, 30, 40}
	for i, v := range vals {
		v := v
		s.Set(NewEntityID(uint32(i), 1), &v)
	}
	s.Remove(NewEntityID(1, 1))

	var got []int
	s.Each(func(_ EntityID, v *int) { got = append(got, *v) })
	assert.Equal(t, []int{10, 30, 40}, got)

	v, ok := s.Get(NewEntityID(3, 1))
	require.True(t, ok)
	assert.Equal(t, 40, *v)
	assert.Equal(t, 3, s.Len())
}

func TestWorld_FlushRemovesComponents(t *testing.T) {
	w := NewWorld()
	health := NewRegisteredStore[float64](w.Registry())
	id := w.CreateEntity()
	hp := 100.0
	health.Set(id, &hp)

	var flushed []EntityID
	w.OnDestroy(func(e EntityID) { flushed = append(flushed, e) })

	assert.True(t, w.MarkForDestruction(id))
	assert.False(t, w.MarkForDestruction(id), "double mark is coalesced")
	assert.True(t, w.Pending(id))
	assert.True(t, w.Alive(id), "destruction is deferred to flush")

	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(id))
	assert.False(t, health.Has(id))
	assert.Equal(t, []EntityID{id}, flushed)
}

func TestEach2_FollowsFirstStoreOrder(t *testing.T) {
	a := NewStore[string]()
	b := NewStore[int]()
	ids := []EntityID{NewEntityID(5, 1), NewEntityID(2, 1), NewEntityID(9, 1)}
	names := []string{"x", "y", "z"}
	for i, id := range ids {
		n := names[i]
		a.Set(id, &n)
		if i != 1 {
			v := i
			b.Set(id, &v)
		}
	}
	var got []string
	Each2(a, b, func(_ EntityID, s *string, _ *int) { got = append(got, *s) })
	assert.Equal(t, []string{"x", "z"}, got)
}
