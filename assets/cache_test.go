package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	loads    map[string]int
	released []string
}

func newCounter() *counter { return &counter{loads: make(map[string]int)} }

func (c *counter) load(name string) (string, error) {
	if name == "broken" {
		return "", errors.New("corrupt file")
	}
	c.loads[name]++
	return name + "#" + string(rune('0'+c.loads[name])), nil
}

func (c *counter) release(name string, _ string) { c.released = append(c.released, name) }

func TestGetLoadsLazilyIntoLocalScope(t *testing.T) {
	c := newCounter()
	cache := NewCache(c.load, WithRelease(c.release))

	v, err := cache.Get("block")
	require.NoError(t, err)
	assert.Equal(t, "block#1", v)

	v, err = cache.Get("block")
	require.NoError(t, err)
	assert.Equal(t, "block#1", v, "second get hits the cache")
	assert.Equal(t, 1, c.loads["block"])

	local, global := cache.Names()
	assert.Equal(t, []string{"block"}, local)
	assert.Empty(t, global)
}

func TestGetPrefersCachedGlobal(t *testing.T) {
	c := newCounter()
	cache := NewCache(c.load)

	_, err := cache.LoadGlobal("font")
	require.NoError(t, err)
	v, err := cache.Get("font")
	require.NoError(t, err)
	assert.Equal(t, "font#1", v)
	assert.Equal(t, 1, c.loads["font"])
}

func TestLoadReplacesAndReleases(t *testing.T) {
	c := newCounter()
	cache := NewCache(c.load, WithRelease(c.release))

	_, err := cache.Load("sheet")
	require.NoError(t, err)
	v, err := cache.Load("sheet")
	require.NoError(t, err)

	assert.Equal(t, "sheet#2", v)
	assert.Equal(t, []string{"sheet"}, c.released)
}

func TestScopesUnloadIndependently(t *testing.T) {
	c := newCounter()
	cache := NewCache(c.load, WithRelease(c.release))

	for _, name := range []string{"b", "a"} {
		_, err := cache.Load(name)
		require.NoError(t, err)
	}
	_, err := cache.LoadGlobal("g")
	require.NoError(t, err)

	assert.True(t, cache.Unload("b"))
	assert.False(t, cache.Unload("b"))
	assert.False(t, cache.Unload("g"), "global names are not in the local scope")

	cache.UnloadAll()
	local, global := cache.Names()
	assert.Empty(t, local)
	assert.Equal(t, []string{"g"}, global)
	assert.Equal(t, []string{"b", "a"}, c.released)

	assert.True(t, cache.UnloadGlobal("g"))
	_, err = cache.LoadGlobal("h")
	require.NoError(t, err)
	cache.UnloadAllGlobal()
	_, global = cache.Names()
	assert.Empty(t, global)
	assert.Equal(t, []string{"b", "a", "g", "h"}, c.released)
}

func TestRegisteredLoaderWins(t *testing.T) {
	c := newCounter()
	cache := NewCache(c.load)
	cache.Register("special", func(string) (string, error) { return "custom", nil })

	v, err := cache.Get("special")
	require.NoError(t, err)
	assert.Equal(t, "custom", v)
	assert.Zero(t, c.loads["special"])
}

func TestLoadErrors(t *testing.T) {
	cache := NewCache(newCounter().load)
	_, err := cache.Get("broken")
	assert.ErrorContains(t, err, "corrupt file")
	local, _ := cache.Names()
	assert.Empty(t, local, "failed loads are not cached")

	empty := NewCache[string](nil)
	_, err = empty.Get("anything")
	assert.ErrorIs(t, err, ErrNoLoader)
}
