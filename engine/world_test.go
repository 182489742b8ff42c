package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/invader/core"
)

type position struct{ X, Y int }
type health struct{ HP int }

// Test that created entities only become visible at commit
func TestCreateIsDeferredUntilCommit(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	require.NoError(t, Attach(w, e, position{X: 1}))

	assert.False(t, w.Alive(e))
	positions := RegisterTable[position](w)
	assert.Equal(t, 0, positions.Len())

	stats := w.Commit()
	assert.Equal(t, 1, stats.Created)
	assert.True(t, w.Alive(e))
	p, ok := positions.Get(e)
	require.True(t, ok)
	assert.Equal(t, 1, p.X)
}

func TestAttachToLiveEntityIsImmediate(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Commit()

	require.NoError(t, Attach(w, e, health{HP: 7}))
	h, ok := RegisterTable[health](w).Get(e)
	require.True(t, ok)
	assert.Equal(t, 7, h.HP)

	assert.True(t, Detach[health](w, e))
	assert.False(t, RegisterTable[health](w).Has(e))
}

func TestDestroyRemovesFromEveryTable(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	require.NoError(t, Attach(w, e, position{}))
	require.NoError(t, Attach(w, e, health{HP: 1}))
	w.Commit()

	w.DestroyEntity(e)
	assert.True(t, w.Alive(e), "destroy is deferred")

	stats := w.Commit()
	assert.Equal(t, 1, stats.Destroyed)
	assert.False(t, w.Alive(e))
	assert.Equal(t, 0, RegisterTable[position](w).Len())
	assert.Equal(t, 0, RegisterTable[health](w).Len())
}

func TestStaleEntityAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.Commit()
	w.DestroyEntity(old)
	w.Commit()

	reused := w.CreateEntity()
	w.Commit()

	assert.Equal(t, old.Index(), reused.Index())
	assert.NotEqual(t, old.Generation(), reused.Generation())
	assert.False(t, w.Alive(old))
	assert.True(t, w.Alive(reused))

	err := Attach(w, old, position{})
	assert.ErrorIs(t, err, ErrStaleEntity)
}

func TestCreateThenDestroyInSameFrame(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	require.NoError(t, Attach(w, e, position{}))
	w.DestroyEntity(e)

	stats := w.Commit()
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Destroyed)
	assert.False(t, w.Alive(e))
	assert.Equal(t, 0, w.EntityCount())
	assert.Equal(t, 0, RegisterTable[position](w).Len())
}

func TestDoubleDestroyCountsOnce(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Commit()

	w.DestroyEntity(e)
	w.DestroyEntity(e)
	assert.Equal(t, 1, w.Commit().Destroyed)
}

func TestConcurrentCreate(t *testing.T) {
	w := NewWorld()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				e := w.CreateEntity()
				_ = Attach(w, e, health{HP: j})
			}
		}()
	}
	wg.Wait()

	w.Commit()
	assert.Equal(t, 400, w.EntityCount())
	assert.Equal(t, 400, RegisterTable[health](w).Len())
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	w := NewWorld()
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	s.Set(c, 3)
	s.Set(a, 1)
	s.Set(b, 2)
	s.Remove(a)

	var got []int
	s.Each(func(_ core.Entity, v *int) { got = append(got, *v) })
	assert.Equal(t, []int{3, 2}, got)
}

func TestEach2Joins(t *testing.T) {
	w := NewWorld()
	a, b := w.CreateEntity(), w.CreateEntity()
	require.NoError(t, Attach(w, a, position{X: 1}))
	require.NoError(t, Attach(w, a, health{HP: 10}))
	require.NoError(t, Attach(w, b, position{X: 2}))
	w.Commit()

	var seen int
	Each2(RegisterTable[position](w), RegisterTable[health](w), func(_ core.Entity, p *position, h *health) {
		seen++
		assert.Equal(t, 1, p.X)
		assert.Equal(t, 10, h.HP)
	})
	assert.Equal(t, 1, seen)
}

func TestResourceStore(t *testing.T) {
	rs := NewResourceStore()
	_, ok := GetResource[*TimeResource](rs)
	assert.False(t, ok)

	tr := &TimeResource{}
	AddResource(rs, tr)
	assert.Same(t, tr, MustGetResource[*TimeResource](rs))

	RemoveResource[*TimeResource](rs)
	assert.Panics(t, func() { MustGetResource[*TimeResource](rs) })
}
