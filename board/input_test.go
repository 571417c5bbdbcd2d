package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyStateEdgesAndLevels(t *testing.T) {
	var s KeyState
	assert.False(t, s.Any())

	s.Press(KeyRotate, KeyLeft)
	assert.True(t, s.JustPressed(KeyRotate))
	assert.True(t, s.Held(KeyLeft))
	assert.False(t, s.JustPressed(KeyDown))

	s.EndFrame()
	assert.False(t, s.JustPressed(KeyRotate))
	assert.True(t, s.Held(KeyRotate), "edge clears, level stays")

	s.SetHeld(KeyRotate, false)
	assert.False(t, s.Held(KeyRotate))
	assert.True(t, s.Any())

	s.Reset()
	assert.False(t, s.Any())
}

func TestKeyNames(t *testing.T) {
	names := make([]string, 0, len(Keys()))
	for _, k := range Keys() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"Rotate", "Left", "Right", "Down", "Hold", "Confirm"}, names)
	assert.Equal(t, "Unknown", Key(99).String())
	assert.Equal(t, "Clearing", Clearing.String())
	assert.Equal(t, "Unknown", State(99).String())
}
