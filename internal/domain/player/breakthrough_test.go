package player_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
)

func TestRollOptions_CoversBonusCapableDomains(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	options := player.RollOptions(rng)

	domains := make(map[player.TechDomain]bool)
	for _, o := range options {
		domains[o.Domain] = true
		assert.GreaterOrEqual(t, o.Bonus, 1)
		assert.LessOrEqual(t, o.Bonus, 3)
		assert.GreaterOrEqual(t, o.Duration, 5)
		assert.LessOrEqual(t, o.Duration, 14)
	}
	assert.Len(t, domains, player.OptionCount)
}

func TestBreakthrough_EliminateThenResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := player.NewBreakthrough(1, 5, player.RollOptions(rng))

	require.Equal(t, player.BreakthroughPending, b.Status)

	// resolving before eliminating fails
	_, err := b.Resolve(rng)
	assert.Error(t, err)

	require.True(t, b.Eliminate(2).OK)
	unlocked, err := b.Resolve(rng)
	require.NoError(t, err)

	assert.Equal(t, player.BreakthroughResolved, b.Status)
	assert.NotEqual(t, 2, b.Unlocked)
	assert.Equal(t, b.Options[b.Unlocked], unlocked)
}

func TestBreakthrough_EliminateValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := player.NewBreakthrough(1, 5, player.RollOptions(rng))

	assert.False(t, b.Eliminate(-1).OK)
	assert.False(t, b.Eliminate(player.OptionCount).OK)

	require.True(t, b.Eliminate(0).OK)
	_, err := b.Resolve(rng)
	require.NoError(t, err)

	// terminal state rejects further operations
	assert.False(t, b.Eliminate(1).OK)
	_, err = b.Resolve(rng)
	assert.Error(t, err)
}

func TestBreakthrough_ResolveIsDeterministicUnderSeed(t *testing.T) {
	options := player.RollOptions(rand.New(rand.NewSource(1)))

	a := player.NewBreakthrough(1, 5, options)
	b := player.NewBreakthrough(1, 5, options)
	a.Eliminate(3)
	b.Eliminate(3)

	ua, err := a.Resolve(rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	ub, err := b.Resolve(rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, ua, ub)
	assert.Equal(t, a.Unlocked, b.Unlocked)
}
