package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, uint64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestIntRange_Inclusive(t *testing.T) {
	src := New(1)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := IntRange(src, 0, 10)
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 10)
		seen[v] = true
	}
	assert.Len(t, seen, 11)
	assert.Equal(t, 5, IntRange(src, 5, 5))
	assert.Equal(t, 5, IntRange(src, 5, 2))
}

func TestShuffle_IsPermutation(t *testing.T) {
	src := New(99)
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	s := append([]int(nil), in...)
	Shuffle(src, s)
	assert.ElementsMatch(t, in, s)

	one := []string{"solo"}
	Shuffle(src, one)
	assert.Equal(t, []string{"solo"}, one)
}

func TestChance_Extremes(t *testing.T) {
	src := New(3)
	for i := 0; i < 100; i++ {
		assert.False(t, Chance(src, 0))
		assert.True(t, Chance(src, 1))
	}
}
