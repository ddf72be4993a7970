package sample

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	t.Run("empty list is not found", func(t *testing.T) {
		_, ok := Pick(Fixed(0), nil)
		assert.False(t, ok)
	})

	t.Run("single entry is deterministic", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			got, ok := Pick(New(seed), []string{"only"})
			assert.True(t, ok)
			assert.Equal(t, "only", got)
		}
	})

	t.Run("result is drawn from the list", func(t *testing.T) {
		variants := []string{"a", "b", "c", "d"}
		src := New(42)
		for i := 0; i < 200; i++ {
			got, ok := Pick(src, variants)
			assert.True(t, ok)
			assert.Contains(t, variants, got)
		}
	})

	t.Run("fixed source selects index", func(t *testing.T) {
		variants := []string{"a", "b", "c"}
		got, _ := Pick(Fixed(1), variants)
		assert.Equal(t, "b", got)
		got, _ = Pick(Fixed(4), variants)
		assert.Equal(t, "b", got)
		got, _ = Pick(Fixed(-1), variants)
		assert.Equal(t, "c", got)
	})
}

func TestNewIsReproducible(t *testing.T) {
	variants := []string{"a", "b", "c", "d", "e"}
	first, second := New(7), New(7)
	for i := 0; i < 50; i++ {
		a, _ := Pick(first, variants)
		b, _ := Pick(second, variants)
		assert.Equal(t, a, b)
	}
}

func TestLockedConcurrentUse(t *testing.T) {
	src := Locked(New(1))
	variants := []string{"a", "b", "c"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, ok := Pick(src, variants)
				assert.True(t, ok)
				assert.Contains(t, variants, got)
			}
		}()
	}
	wg.Wait()
}
